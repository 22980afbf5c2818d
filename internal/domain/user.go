package domain

import "time"

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
