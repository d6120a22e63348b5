package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/codewithraj/blog/internal/blog/entity"
	"github.com/codewithraj/blog/internal/pkg/config"
	"github.com/codewithraj/blog/internal/pkg/gate"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/idempotency"
	"github.com/codewithraj/blog/internal/pkg/instrument"
	"github.com/codewithraj/blog/internal/pkg/jwt"
	"github.com/codewithraj/blog/internal/pkg/storage"
	"github.com/codewithraj/blog/internal/pkg/validator"
	"github.com/codewithraj/blog/internal/shared/event"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("h:" + plaintext), nil }
func (fakeHash) Verify(hashed, plaintext string) bool  { return hashed == "h:"+plaintext }

type fakeNumberID struct{ next int64 }

func (f *fakeNumberID) Generate() int64 {
	f.next++
	return f.next
}

type fakeStringID struct{ value string }

func (f fakeStringID) Generate() string { return f.value }

type fakeDB struct {
	posts    map[int64]entity.Post
	comments map[int64]entity.Comment

	createPostErr error
	listErr       error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		posts:    make(map[int64]entity.Post),
		comments: make(map[int64]entity.Comment),
	}
}

func (f *fakeDB) ListPosts(context.Context) ([]entity.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeDB) GetPostByID(_ context.Context, id int64) (*entity.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &p, nil
}

func (f *fakeDB) CreatePost(_ context.Context, post entity.Post) error {
	if f.createPostErr != nil {
		return f.createPostErr
	}
	for _, p := range f.posts {
		if p.Title == post.Title {
			return goerror.ErrConflict
		}
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakeDB) UpdatePost(_ context.Context, post entity.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return goerror.ErrNotFound
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakeDB) DeletePostCascade(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.posts, id)
	for cid, c := range f.comments {
		if c.PostID == id {
			delete(f.comments, cid)
		}
	}
	return nil
}

func (f *fakeDB) ListCommentsByPost(_ context.Context, postID int64) ([]entity.Comment, error) {
	var out []entity.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDB) GetCommentByID(_ context.Context, id int64) (*entity.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &c, nil
}

func (f *fakeDB) CreateComment(_ context.Context, comment entity.Comment) error {
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeDB) DeleteComment(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

type contactMail struct {
	name, email, phone, message string
}

type fakeMailer struct {
	sent []contactMail
	err  error
}

func (f *fakeMailer) SendContactMessage(_ context.Context, name, email, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, contactMail{name: name, email: email, phone: phone, message: message})
	return nil
}

type fakeMessaging struct {
	published []event.CommentCreatedMessage
	err       error
}

func (f *fakeMessaging) PublishCommentCreated(_ context.Context, msg event.CommentCreatedMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type storedObject struct {
	key         string
	contentType string
	data        []byte
}

type fakeStorage struct {
	objects []storedObject
	err     error
}

func (f *fakeStorage) PutObject(_ context.Context, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.err != nil {
		return storage.ObjectInfo{}, f.err
	}
	data, _ := io.ReadAll(r)
	f.objects = append(f.objects, storedObject{key: key, contentType: opts.ContentType, data: data})
	return storage.ObjectInfo{Key: key, Size: int64(len(data)), URL: "https://cdn.example.com/" + key}, nil
}

func (f *fakeStorage) DeleteObject(context.Context, string) error { return nil }
func (f *fakeStorage) PublicURL(key string) string                { return "https://cdn.example.com/" + key }
func (f *fakeStorage) Close() error                               { return nil }

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(`
mail:
  from: no-reply@example.com
  operator: owner@example.com
`))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	return cfg
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	mail    *fakeMailer
	msg     *fakeMessaging
	storage *fakeStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	f := &fixture{
		db:      newFakeDB(),
		mail:    &fakeMailer{},
		msg:     &fakeMessaging{},
		storage: &fakeStorage{},
	}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMailer:    f.mail,
		RepoMessaging: f.msg,
		Idempotency:   idempotency.New(client),
		Validator:     v10,
		Config:        testConfig(t),
		Gate:          gate.New(1),
		Storage:       f.storage,
		HMAC:          fakeHash{},
		UID:           &fakeNumberID{next: 100},
		UUID:          fakeStringID{value: "object-key"},
		Clock:         fixedClock{now: testNow},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func asAdmin(ctx context.Context) context.Context {
	return jwt.SetAuth(ctx, jwt.Claims{UserID: 1, UserEmail: "admin@example.com", FullName: "Site Owner"})
}

func asReader(ctx context.Context) context.Context {
	return jwt.SetAuth(ctx, jwt.Claims{UserID: 42, UserEmail: "reader@example.com", FullName: "A Reader"})
}

func wantCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()
	if !goerror.HasCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func validPostInput() CreatePostInput {
	return CreatePostInput{
		Title:    "A Day in the Life",
		Subtitle: "Morning thoughts",
		Body:     "Lorem ipsum dolor sit amet.",
	}
}

func TestCreatePostRequiresPrivilegedIdentity(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreatePost(context.Background(), validPostInput())
	wantCode(t, err, goerror.CodeUnauthorized)

	_, err = f.uc.CreatePost(asReader(context.Background()), validPostInput())
	wantCode(t, err, goerror.CodeForbidden)

	if len(f.db.posts) != 0 {
		t.Error("no post should be created")
	}
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)

	id, err := f.uc.CreatePost(asAdmin(context.Background()), validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	post, ok := f.db.posts[id]
	if !ok {
		t.Fatal("post not stored")
	}
	if post.AuthorID != 1 || post.AuthorName != "Site Owner" {
		t.Errorf("author = %d %q, want session identity", post.AuthorID, post.AuthorName)
	}
	if !post.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", post.CreatedAt, testNow)
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	f := newFixture(t)
	ctx := asAdmin(context.Background())

	if _, err := f.uc.CreatePost(ctx, validPostInput()); err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	_, err := f.uc.CreatePost(ctx, validPostInput())
	wantCode(t, err, goerror.CodeConflict)
}

func TestCreatePostWithUpload(t *testing.T) {
	f := newFixture(t)

	in := validPostInput()
	in.Image = &Upload{
		Reader:      strings.NewReader("png-bytes"),
		Filename:    "header.PNG",
		Size:        9,
		ContentType: "image/png",
	}

	id, err := f.uc.CreatePost(asAdmin(context.Background()), in)
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if len(f.storage.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(f.storage.objects))
	}
	obj := f.storage.objects[0]
	if obj.key != "posts/101/object-key.png" {
		t.Errorf("object key = %q", obj.key)
	}
	if got := f.db.posts[id].ImageURL; got != "https://cdn.example.com/"+obj.key {
		t.Errorf("ImageURL = %q, want stored object URL", got)
	}
}

func TestUpdatePostKeepsExistingImage(t *testing.T) {
	f := newFixture(t)
	ctx := asAdmin(context.Background())

	id, err := f.uc.CreatePost(ctx, validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	err = f.uc.UpdatePost(ctx, UpdatePostInput{
		ID:       id,
		Title:    "A Day in the Life, Revised",
		Subtitle: "Evening thoughts",
		Body:     "Updated body.",
		ImageURL: "https://images.example.com/pic.jpg",
	})
	if err != nil {
		t.Fatalf("UpdatePost() error = %v", err)
	}

	post := f.db.posts[id]
	if post.Title != "A Day in the Life, Revised" || post.ImageURL != "https://images.example.com/pic.jpg" {
		t.Errorf("post = %+v", post)
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := asAdmin(context.Background())

	id, err := f.uc.CreatePost(ctx, validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if err := f.uc.CreateComment(asReader(context.Background()), CreateCommentInput{PostID: id, Body: "Nice one"}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if err := f.uc.DeletePost(ctx, id); err != nil {
		t.Fatalf("DeletePost() error = %v", err)
	}
	if len(f.db.posts) != 0 || len(f.db.comments) != 0 {
		t.Errorf("posts = %d comments = %d, want both empty", len(f.db.posts), len(f.db.comments))
	}

	err = f.uc.DeletePost(ctx, id)
	wantCode(t, err, goerror.CodeNotFound)
}

func TestCreateCommentRequiresLogin(t *testing.T) {
	f := newFixture(t)

	err := f.uc.CreateComment(context.Background(), CreateCommentInput{PostID: 1, Body: "hi"})
	wantCode(t, err, goerror.CodeUnauthorized)
}

func TestCreateCommentPublishesEvent(t *testing.T) {
	f := newFixture(t)

	id, err := f.uc.CreatePost(asAdmin(context.Background()), validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if err := f.uc.CreateComment(asReader(context.Background()), CreateCommentInput{PostID: id, Body: "Great read!"}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	if len(f.msg.published) != 1 {
		t.Fatalf("published = %d, want 1", len(f.msg.published))
	}
	msg := f.msg.published[0]
	if msg.PostID != id || msg.AuthorName != "A Reader" || msg.PostTitle != "A Day in the Life" {
		t.Errorf("published message = %+v", msg)
	}
}

func TestCreateCommentBrokerFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.msg.err = errors.New("broker down")

	id, err := f.uc.CreatePost(asAdmin(context.Background()), validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if err := f.uc.CreateComment(asReader(context.Background()), CreateCommentInput{PostID: id, Body: "Great read!"}); err != nil {
		t.Errorf("CreateComment() error = %v, want nil despite broker failure", err)
	}
	if len(f.db.comments) != 1 {
		t.Error("comment should still be stored")
	}
}

func TestDeleteCommentReturnsPostID(t *testing.T) {
	f := newFixture(t)
	adminCtx := asAdmin(context.Background())

	postID, err := f.uc.CreatePost(adminCtx, validPostInput())
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	if err := f.uc.CreateComment(asReader(context.Background()), CreateCommentInput{PostID: postID, Body: "Nice"}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	var commentID int64
	for id := range f.db.comments {
		commentID = id
	}

	_, err = f.uc.DeleteComment(asReader(context.Background()), commentID)
	wantCode(t, err, goerror.CodeForbidden)

	gotPostID, err := f.uc.DeleteComment(adminCtx, commentID)
	if err != nil {
		t.Fatalf("DeleteComment() error = %v", err)
	}
	if gotPostID != postID {
		t.Errorf("post id = %d, want %d", gotPostID, postID)
	}
}

func validContactInput() ContactInput {
	return ContactInput{
		Name:    "A Reader",
		Email:   "reader@example.com",
		Phone:   "+1 555 0100",
		Message: "Hello, I enjoyed your last post.",
	}
}

func TestContactSendsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := asReader(context.Background())

	if err := f.uc.Contact(ctx, validContactInput()); err != nil {
		t.Fatalf("Contact() error = %v", err)
	}

	// Same submission again must not send a second mail.
	if err := f.uc.Contact(ctx, validContactInput()); err != nil {
		t.Fatalf("Contact() repeat error = %v", err)
	}

	if len(f.mail.sent) != 1 {
		t.Fatalf("mails sent = %d, want 1", len(f.mail.sent))
	}
	if f.mail.sent[0].message != "Hello, I enjoyed your last post." {
		t.Errorf("message = %q", f.mail.sent[0].message)
	}
}

func TestContactRequiresLogin(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Contact(context.Background(), validContactInput())
	wantCode(t, err, goerror.CodeUnauthorized)
}

func TestContactDeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.mail.err = errors.New("smtp down")

	err := f.uc.Contact(asReader(context.Background()), validContactInput())
	wantCode(t, err, goerror.CodeDelivery)
}
