package auth

import "time"

// User represents a registered account.
type User struct {
	ID         int64
	Name       string
	Email      string
	CPF        string
	Age        int
	Credential Credential
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Profile is the public slice of a user surfaced to the frontend widget.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
