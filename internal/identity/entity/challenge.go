package entity

import "time"

// Challenge is a pending one-time-code flow keyed by purpose and email.
//
// Only a hash of the code is stored. For registrations the payload carries the
// submitted profile so the account is created only after verification.
type Challenge struct {
	Purpose   ChallengePurpose
	Email     string
	CodeHash  string
	Payload   ChallengePayload
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge deadline has passed at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ChallengePayload is flow-specific data carried alongside the code hash.
type ChallengePayload struct {
	FullName     string `json:"full_name,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}
