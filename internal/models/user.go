package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type User struct {
	ID         uuid.UUID  `db:"id"`
	Name       string     `db:"name"`
	Username   string     `db:"username"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Role       string     `db:"role"`
	Department string     `db:"department"`
	Status     string     `db:"status"`
	LastAccess *time.Time `db:"last_access"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}
