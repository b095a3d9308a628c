package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type User struct {
	UserID       string
	Email        string
	PasswordHash []byte
	Name         string
	Phone        string
	Role         Role
	Address      Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
