package models

import "time"

// Token binds one session credential to its owner. At most one row exists
// per user; issuing a new token replaces the previous one.
type Token struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Principal is the identity resolved from a stored, correctly signed token.
type Principal struct {
	UserID    string
	UserName  string
	ExpiresAt time.Time
}
