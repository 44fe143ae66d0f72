package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

type AuditLog struct {
	ID        uuid.UUID `db:"id"`
	Action    string    `db:"action"`
	Resource  string    `db:"resource"`
	Details   string    `db:"details"`
	IP        string    `db:"ip"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
