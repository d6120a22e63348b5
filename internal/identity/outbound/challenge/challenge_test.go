package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newChallenge(now time.Time, email string) entity.Challenge {
	return entity.Challenge{
		Purpose:   entity.ChallengePurposeRegistration,
		Email:     email,
		CodeHash:  "code-hash",
		Payload:   entity.ChallengePayload{FullName: "Jane Doe", PasswordHash: "pw-hash"},
		IssuedAt:  now,
		ExpiresAt: now.Add(10 * time.Minute),
	}
}

func TestMemoryTakeConsumesOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemory(fixedClock{now: now})

	if err := store.Save(ctx, newChallenge(now, "jane@example.com")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got.CodeHash != "code-hash" || got.Payload.FullName != "Jane Doe" {
		t.Errorf("Take() = %+v, want stored challenge", got)
	}

	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("second Take() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryTakeIsKeyedByPurposeAndEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemory(fixedClock{now: now})

	if err := store.Save(ctx, newChallenge(now, "jane@example.com")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := store.Take(ctx, entity.ChallengePurposePasswordReset, "jane@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("Take() with other purpose error = %v, want ErrNotFound", err)
	}
	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "john@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("Take() with other email error = %v, want ErrNotFound", err)
	}

	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com"); err != nil {
		t.Errorf("Take() with matching key error = %v", err)
	}
}

func TestMemorySaveOverwritesPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemory(fixedClock{now: now})

	first := newChallenge(now, "jane@example.com")
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := first
	second.CodeHash = "reissued-hash"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() reissue error = %v", err)
	}

	got, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got.CodeHash != "reissued-hash" {
		t.Errorf("Take() CodeHash = %q, want reissued-hash", got.CodeHash)
	}
}

func TestMemorySaveSweepsLapsedEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := &fixedClock{now: now}
	store := NewMemory(clk)

	if err := store.Save(ctx, newChallenge(now, "jane@example.com")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// A later save for another identity evicts entries past the grace window.
	clk.now = now.Add(10*time.Minute + expiryGrace + time.Minute)
	if err := store.Save(ctx, newChallenge(clk.now, "john@example.com")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	store.mu.Lock()
	size := len(store.data)
	store.mu.Unlock()
	if size != 1 {
		t.Errorf("store holds %d entries after sweep, want 1", size)
	}

	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("Take() of lapsed entry error = %v, want ErrNotFound", err)
	}
}

func TestMemoryTakeInsideGraceReportsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clk := &fixedClock{now: now}
	store := NewMemory(clk)

	ch := newChallenge(now, "jane@example.com")
	if err := store.Save(ctx, ch); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	clk.now = ch.ExpiresAt.Add(time.Minute)
	got, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("Take() inside grace error = %v", err)
	}
	if !got.Expired(clk.now) {
		t.Error("challenge should report expired past its deadline")
	}
}

func TestRedisTakeConsumesOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedis(client, fixedClock{now: now})

	if err := store.Save(ctx, newChallenge(now, "jane@example.com")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got.CodeHash != "code-hash" || got.Payload.PasswordHash != "pw-hash" {
		t.Errorf("Take() = %+v, want stored challenge", got)
	}

	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("second Take() error = %v, want ErrNotFound", err)
	}
}

func TestRedisTakeAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedis(client, fixedClock{now: now})

	ch := newChallenge(now, "jane@example.com")
	if err := store.Save(ctx, ch); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Still readable shortly after expiry so the caller can report expiry.
	srv.FastForward(ch.ExpiresAt.Sub(now) + time.Minute)
	got, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com")
	if err != nil {
		t.Fatalf("Take() inside grace error = %v", err)
	}
	if !got.Expired(ch.ExpiresAt.Add(time.Minute)) {
		t.Error("challenge should report expired past its deadline")
	}

	if err := store.Save(ctx, ch); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	srv.FastForward(ch.ExpiresAt.Sub(now) + expiryGrace + time.Minute)
	if _, err := store.Take(ctx, entity.ChallengePurposeRegistration, "jane@example.com"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("Take() past grace error = %v, want ErrNotFound", err)
	}
}

func TestNewFactory(t *testing.T) {
	if _, err := New(DriverMemory, nil, fixedClock{}); err != nil {
		t.Errorf("New(memory) error = %v", err)
	}
	if _, err := New(DriverRedis, redis.NewClient(&redis.Options{}), fixedClock{}); err != nil {
		t.Errorf("New(redis) error = %v", err)
	}
	if _, err := New(Driver("etcd"), nil, nil); !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("New(etcd) error = %v, want ErrUnsupportedDriver", err)
	}
}
