package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/codewithraj/blog/internal/shared/event"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("h:" + plaintext), nil }
func (fakeHash) Verify(hashed, plaintext string) bool  { return hashed == "h:"+plaintext }

type fakeOTP struct {
	codes []string
	calls int
}

func (f *fakeOTP) Generate() (string, error) {
	code := f.codes[f.calls%len(f.codes)]
	f.calls++
	return code, nil
}

type fakeNumberID struct{ next int64 }

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

type fakeStringID struct{ value string }

func (f fakeStringID) Generate() string { return f.value }

type fakeJWT struct{ err error }

func (f fakeJWT) Generate(uid int64, _, _ string) (string, error) {
	return "token-" + strconv.FormatInt(uid, 10), f.err
}

func (fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, jwt.ErrInvalidToken }

type fakeDB struct {
	users         map[string]entity.User
	passwords     map[int64]string
	getErr        error
	createErr     error
	updateErr     error
	updatedHashes map[int64]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:         make(map[string]entity.User),
		passwords:     make(map[int64]string),
		updatedHashes: make(map[int64]string),
	}
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &user, nil
}

func (f *fakeDB) GetPasswordByUserID(_ context.Context, userID int64) (string, error) {
	hash, ok := f.passwords[userID]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return hash, nil
}

func (f *fakeDB) CreateRegistration(_ context.Context, user entity.User, passwordHash string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.users[user.Email] = user
	f.passwords[user.ID] = passwordHash
	return nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedHashes[userID] = passwordHash
	return nil
}

type fakeChallengeStore struct {
	data    map[string]entity.Challenge
	saveErr error
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{data: make(map[string]entity.Challenge)}
}

func (f *fakeChallengeStore) key(p entity.ChallengePurpose, email string) string {
	return p.String() + ":" + email
}

func (f *fakeChallengeStore) Save(_ context.Context, ch entity.Challenge) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[f.key(ch.Purpose, ch.Email)] = ch
	return nil
}

func (f *fakeChallengeStore) Take(_ context.Context, p entity.ChallengePurpose, email string) (*entity.Challenge, error) {
	ch, ok := f.data[f.key(p, email)]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(f.data, f.key(p, email))
	return &ch, nil
}

type sentMail struct {
	to, name, code string
}

type fakeMailer struct {
	registration []sentMail
	reset        []sentMail
	err          error
}

func (f *fakeMailer) SendRegistrationCode(_ context.Context, to, name, code string) error {
	if f.err != nil {
		return f.err
	}
	f.registration = append(f.registration, sentMail{to: to, name: name, code: code})
	return nil
}

func (f *fakeMailer) SendPasswordResetCode(_ context.Context, to, name, code string) error {
	if f.err != nil {
		return f.err
	}
	f.reset = append(f.reset, sentMail{to: to, name: name, code: code})
	return nil
}

type fakeMessaging struct {
	published []event.UserRegisteredMessage
	err       error
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg event.UserRegisteredMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  identity:
    otp_ttl_minutes: 10
    reset_grant_ttl_minutes: 15
    session_ttl_hours: 24
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	return cfg
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	store *fakeChallengeStore
	mail  *fakeMailer
	msg   *fakeMessaging
	otp   *fakeOTP
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	f := &fixture{
		db:    newFakeDB(),
		store: newFakeChallengeStore(),
		mail:  &fakeMailer{},
		msg:   &fakeMessaging{},
		otp:   &fakeOTP{codes: []string{"654321", "111222"}},
	}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoChallenge: f.store,
		RepoMailer:    f.mail,
		RepoMessaging: f.msg,
		Validator:     v10,
		Config:        testConfig(t),
		Bcrypt:        fakeHash{},
		HMAC:          fakeHash{},
		OTP:           f.otp,
		UID:           &fakeNumberID{},
		UUID:          fakeStringID{value: "reset-token-1"},
		Clock:         fixedClock{now: testNow},
		JWT:           fakeJWT{},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func wantCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()
	if !goerror.HasCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func TestRegisterStoresChallengeAndSendsCode(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if len(f.mail.registration) != 1 {
		t.Fatalf("registration mails = %d, want 1", len(f.mail.registration))
	}
	sent := f.mail.registration[0]
	if sent.to != "jane@example.com" || sent.code != "654321" {
		t.Errorf("sent mail = %+v, want lowered email and first code", sent)
	}

	ch, err := f.store.Take(context.Background(), entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("challenge not stored: %v", err)
	}
	if ch.CodeHash != "h:654321" {
		t.Errorf("CodeHash = %q, want hash of issued code", ch.CodeHash)
	}
	if ch.Payload.FullName != "Jane Doe" || ch.Payload.PasswordHash != "h:s3cret-pass" {
		t.Errorf("Payload = %+v, want profile and password hash", ch.Payload)
	}
	if got, want := ch.ExpiresAt, testNow.Add(10*time.Minute); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", got, want)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.db.users["jane@example.com"] = entity.User{ID: 7, Email: "jane@example.com"}

	err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	wantCode(t, err, goerror.CodeConflict)

	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Msg() != "You've already signed up with this email, login instead." {
		t.Errorf("Msg() = %q", gerr.Msg())
	}
	if len(f.mail.registration) != 0 {
		t.Error("no mail should be sent for duplicate email")
	}
}

func TestRegisterDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.mail.err = errors.New("smtp down")

	err := f.uc.Register(context.Background(), RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	wantCode(t, err, goerror.CodeDelivery)
}

func TestRegisterVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.uc.Register(ctx, RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	out, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "654321"})
	if err != nil {
		t.Fatalf("RegisterVerify() error = %v", err)
	}
	if out.Token != "token-1" || out.FullName != "Jane Doe" {
		t.Errorf("AuthOutput = %+v", out)
	}

	user, ok := f.db.users["jane@example.com"]
	if !ok {
		t.Fatal("user not created")
	}
	if f.db.passwords[user.ID] != "h:s3cret-pass" {
		t.Errorf("stored password hash = %q", f.db.passwords[user.ID])
	}

	if len(f.msg.published) != 1 || f.msg.published[0].Email != "jane@example.com" {
		t.Errorf("published = %+v, want one user registered event", f.msg.published)
	}

	// The challenge is consumed; replaying the same code must fail.
	_, err = f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "654321"})
	wantCode(t, err, goerror.CodeNotFound)
}

func TestRegisterVerifyWrongCodeReissues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.uc.Register(ctx, RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "000000"})
	wantCode(t, err, goerror.CodeMismatch)

	if len(f.mail.registration) != 2 {
		t.Fatalf("registration mails = %d, want initial plus reissue", len(f.mail.registration))
	}
	if f.mail.registration[1].code != "111222" {
		t.Errorf("reissued code = %q, want fresh code", f.mail.registration[1].code)
	}

	// The reissued code must work and keep the original profile.
	out, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "111222"})
	if err != nil {
		t.Fatalf("RegisterVerify() with reissued code error = %v", err)
	}
	if out.FullName != "Jane Doe" {
		t.Errorf("FullName = %q", out.FullName)
	}
}

func TestRegisterVerifyExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.store.Save(ctx, entity.Challenge{
		Purpose:   entity.ChallengePurposeRegistration,
		Email:     "jane@example.com",
		CodeHash:  "h:654321",
		Payload:   entity.ChallengePayload{FullName: "Jane Doe", PasswordHash: "h:pw"},
		IssuedAt:  testNow.Add(-time.Hour),
		ExpiresAt: testNow.Add(-time.Minute),
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "654321"})
	wantCode(t, err, goerror.CodeExpired)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.db.users["jane@example.com"] = entity.User{ID: 9, Email: "jane@example.com", FullName: "Jane Doe"}
	f.db.passwords[9] = "h:s3cret-pass"

	out, err := f.uc.Login(ctx, LoginInput{Email: "JANE@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if out.Token != "token-9" || out.UserID != 9 {
		t.Errorf("AuthOutput = %+v", out)
	}
	if got, want := out.ExpiresAt, testNow.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", got, want)
	}

	_, err = f.uc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "s3cret-pass"})
	wantCode(t, err, goerror.CodeNotFound)

	_, err = f.uc.Login(ctx, LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	wantCode(t, err, goerror.CodeUnauthorized)
}

func TestPasswordForgotUnknownEmail(t *testing.T) {
	f := newFixture(t)

	err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"})
	wantCode(t, err, goerror.CodeNotFound)

	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Msg() != "No account link with this email !" {
		t.Errorf("Msg() = %q", gerr.Msg())
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.db.users["jane@example.com"] = entity.User{ID: 9, Email: "jane@example.com", FullName: "Jane Doe"}

	if err := f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("PasswordForgot() error = %v", err)
	}
	if len(f.mail.reset) != 1 {
		t.Fatalf("reset mails = %d, want 1", len(f.mail.reset))
	}

	out, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{
		Email: "jane@example.com",
		Code:  f.mail.reset[0].code,
	})
	if err != nil {
		t.Fatalf("PasswordForgotVerify() error = %v", err)
	}
	if out.ResetToken != "reset-token-1" {
		t.Errorf("ResetToken = %q", out.ResetToken)
	}

	err = f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      "jane@example.com",
		ResetToken: out.ResetToken,
		Password:   "n3w-password",
	})
	if err != nil {
		t.Fatalf("PasswordReset() error = %v", err)
	}
	if f.db.updatedHashes[9] != "h:n3w-password" {
		t.Errorf("updated hash = %q", f.db.updatedHashes[9])
	}

	// The grant is consumed; a second reset attempt must fail.
	err = f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      "jane@example.com",
		ResetToken: out.ResetToken,
		Password:   "n3w-password",
	})
	wantCode(t, err, goerror.CodeNotFound)
}

func TestPasswordResetWrongToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.db.users["jane@example.com"] = entity.User{ID: 9, Email: "jane@example.com", FullName: "Jane Doe"}

	if err := f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("PasswordForgot() error = %v", err)
	}
	if _, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{
		Email: "jane@example.com",
		Code:  f.mail.reset[0].code,
	}); err != nil {
		t.Fatalf("PasswordForgotVerify() error = %v", err)
	}

	err := f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      "jane@example.com",
		ResetToken: "not-the-token",
		Password:   "n3w-password",
	})
	wantCode(t, err, goerror.CodeMismatch)

	if len(f.db.updatedHashes) != 0 {
		t.Error("password must not change for a wrong token")
	}
}
