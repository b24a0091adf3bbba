package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Validate implements the enum validator contract.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleCashier:
		return nil
	default:
		return fmt.Errorf("unknown role: %q", string(r))
	}
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}
