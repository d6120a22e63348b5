package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// expiryGrace keeps a challenge readable for a while past its deadline so a
// late submission can be answered with "expired" instead of "not found".
const expiryGrace = 30 * time.Minute

func storeKey(p entity.ChallengePurpose, email string) string {
	return "identity:challenge:" + p.String() + ":" + email
}

// Redis stores challenges in redis so consumption works across instances.
type Redis struct {
	client *redis.Client
	clock  clock.Clocker
}

// NewRedis returns a redis-backed challenge store.
func NewRedis(client *redis.Client, clk clock.Clocker) *Redis {
	return &Redis{client: client, clock: clk}
}

// Save stores the challenge with a TTL, replacing any pending one for the
// same purpose and email.
func (r *Redis) Save(ctx context.Context, ch entity.Challenge) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	ttl := ch.ExpiresAt.Sub(r.clock.Now()) + expiryGrace
	if ttl <= 0 {
		return goerror.NewServer(errors.New("challenge already expired"))
	}

	return r.client.Set(ctx, storeKey(ch.Purpose, ch.Email), raw, ttl).Err()
}

// Take atomically removes and returns the pending challenge for the purpose
// and email. It returns goerror.ErrNotFound when nothing is pending.
func (r *Redis) Take(ctx context.Context, p entity.ChallengePurpose, email string) (*entity.Challenge, error) {
	raw, err := r.client.GetDel(ctx, storeKey(p, email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var ch entity.Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}
