package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator produces one-time codes.
type Generator interface {
	// Generate returns a fresh numeric code.
	Generate() (string, error)
}

const (
	codeMin = 100000
	codeMax = 999999
)

// Numeric generates uniformly random 6-digit codes using crypto/rand.
type Numeric struct{}

// NewNumeric returns a Numeric code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a random code in [100000, 999999].
func (*Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}
