// Package challenge stores pending one-time-code challenges keyed by purpose
// and email. A challenge is written when a flow starts and consumed exactly
// once when the submitted code is checked.
package challenge

import "errors"

// Driver selects a challenge store backend.
type Driver string

const (
	// DriverMemory keeps challenges in process memory. Suitable for tests and
	// single-instance development runs.
	DriverMemory Driver = "memory"
	// DriverRedis keeps challenges in redis so any instance can consume them.
	DriverRedis Driver = "redis"
)

// ErrUnsupportedDriver is returned for unknown store drivers.
var ErrUnsupportedDriver = errors.New("unsupported challenge store driver")
