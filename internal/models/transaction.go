package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// Status is stored as free text; these are the values the API hands out by
// default. Other values are representable but carry no meaning downstream.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// CategoryTotal is an aggregate row: summed amount per category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type Transaction struct {
	ID             uuid.UUID       `db:"id"`
	Description    string          `db:"description"`
	Amount         float64         `db:"amount"`
	OccurrenceDate time.Time       `db:"occurrence_date"`
	DueDate        *time.Time      `db:"due_date"`
	Category       string          `db:"category"`
	Kind           TransactionKind `db:"kind"`
	Status         string          `db:"status"`
	Supplier       string          `db:"supplier"`
	PaymentMethod  string          `db:"payment_method"`
	Notes          string          `db:"notes"`
	UserID         uuid.UUID       `db:"user_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
