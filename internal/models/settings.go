package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCurrency = "BRL"
	DefaultTimezone = "America/Sao_Paulo"
)

// UserSettings holds per-user preferences. A row is created lazily with
// defaults on first access.
type UserSettings struct {
	ID                uuid.UUID `db:"id"`
	Currency          string    `db:"currency"`
	Timezone          string    `db:"timezone"`
	NotificationEmail string    `db:"notification_email"`
	AlertLimit        float64   `db:"alert_limit"`
	UserID            uuid.UUID `db:"user_id"`
	UpdatedAt         time.Time `db:"updated_at"`
}
