package domain

import "time"

// User models a registered account. Username and CitizenID are both unique.
type User struct {
	ID           string    `json:"id"`
	CitizenID    string    `json:"cedula"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal projects the user into the identity carried by a request.
func (u *User) Principal() *Principal {
	return NewPrincipal(u.Username, u.Role)
}
