package entity

import "time"

// User is an account row without credential material.
type User struct {
	ID        int64
	Email     string
	FullName  string
	CreatedAt time.Time
}
