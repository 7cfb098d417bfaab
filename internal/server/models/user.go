// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. HashedPassword is an opaque digest and is never
// compared in plaintext. XP is owned by habit logic outside this service.
type User struct {
	ID             string
	UserName       string
	Email          string
	HashedPassword string
	JoinedAt       time.Time
	XP             int64
}
