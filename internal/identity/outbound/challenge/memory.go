package challenge

import (
	"context"
	"sync"

	"github.com/codewithraj/blog/internal/identity/entity"
	"github.com/codewithraj/blog/internal/pkg/clock"
	"github.com/codewithraj/blog/internal/pkg/goerror"
)

// Memory is an in-process challenge store.
//
// Entries outlive their deadline by the same grace the redis driver uses, so
// a late submission still reads "expired". Save sweeps entries past the
// grace so abandoned challenges do not accumulate.
type Memory struct {
	clock clock.Clocker

	mu   sync.Mutex
	data map[string]entity.Challenge
}

// NewMemory returns an empty in-process store.
func NewMemory(clk clock.Clocker) *Memory {
	return &Memory{clock: clk, data: make(map[string]entity.Challenge)}
}

// Save stores the challenge, replacing any pending one for the same purpose
// and email, and evicts entries whose grace window has lapsed.
func (m *Memory) Save(_ context.Context, ch entity.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for key, pending := range m.data {
		if now.After(pending.ExpiresAt.Add(expiryGrace)) {
			delete(m.data, key)
		}
	}

	m.data[storeKey(ch.Purpose, ch.Email)] = ch
	return nil
}

// Take removes and returns the pending challenge for the purpose and email.
// It returns goerror.ErrNotFound when nothing is pending or the grace window
// has lapsed.
func (m *Memory) Take(_ context.Context, p entity.ChallengePurpose, email string) (*entity.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := storeKey(p, email)
	ch, ok := m.data[key]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(m.data, key)

	if m.clock.Now().After(ch.ExpiresAt.Add(expiryGrace)) {
		return nil, goerror.ErrNotFound
	}

	return &ch, nil
}
