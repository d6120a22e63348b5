package challenge

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/clock"
)

// Store is the common behavior of challenge store backends.
type Store interface {
	Save(ctx context.Context, ch entity.Challenge) error
	Take(ctx context.Context, p entity.ChallengePurpose, email string) (*entity.Challenge, error)
}

// New creates a challenge store for the given driver.
func New(driver Driver, client *redis.Client, clk clock.Clocker) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemory(clk), nil
	case DriverRedis:
		return NewRedis(client, clk), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}
