package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // unique, stored lowercased
	DateOfBirth  string // YYYY-MM-DD
	Gender       string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
