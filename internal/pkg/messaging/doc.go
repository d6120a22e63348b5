// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// The goal is to keep business code independent from the underlying messaging
// system. Use-case code relies on the interfaces in this package; the concrete
// broker (NATS here) is wired in at application start.
package messaging
