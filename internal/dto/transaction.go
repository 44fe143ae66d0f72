package dto

// CreateTransactionRequest carries a new transaction. Amount is untyped so
// numeric strings coerce the same way as numbers; the service names the
// field when coercion fails.
type CreateTransactionRequest struct {
	Description    string `json:"description"`
	Amount         any    `json:"amount"`
	OccurrenceDate string `json:"occurrence_date"`
	DueDate        string `json:"due_date"`
	Category       string `json:"category"`
	Kind           string `json:"kind"`
	Status         string `json:"status"`
	Supplier       string `json:"supplier"`
	PaymentMethod  string `json:"payment_method"`
	Notes          string `json:"notes"`
}

// UpdateTransactionRequest is a partial patch: nil pointers (and a nil
// amount) leave the field untouched. An empty due_date string clears the
// due date.
type UpdateTransactionRequest struct {
	Description    *string `json:"description"`
	Amount         any     `json:"amount"`
	OccurrenceDate *string `json:"occurrence_date"`
	DueDate        *string `json:"due_date"`
	Category       *string `json:"category"`
	Kind           *string `json:"kind"`
	Status         *string `json:"status"`
	Supplier       *string `json:"supplier"`
	PaymentMethod  *string `json:"payment_method"`
	Notes          *string `json:"notes"`
}

// ListTransactionsQuery holds the raw query parameters of the list endpoint.
// Page and PageSize stay strings so malformed integers can be rejected with
// the offending parameter name.
type ListTransactionsQuery struct {
	Kind     string
	Category string
	Status   string
	Search   string
	DateFrom string
	DateTo   string
	Page     string
	PageSize string
}

type TransactionResponse struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	OccurrenceDate string  `json:"occurrence_date"`
	DueDate        *string `json:"due_date"`
	Category       string  `json:"category"`
	Kind           string  `json:"kind"`
	Status         string  `json:"status"`
	Supplier       string  `json:"supplier"`
	PaymentMethod  string  `json:"payment_method"`
	Notes          string  `json:"notes"`
	CreatedAt      string  `json:"created_at"`
}

type TransactionStats struct {
	Total        float64 `json:"total"`
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	Count        int64   `json:"count"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Stats        TransactionStats      `json:"stats"`
	Page         int                   `json:"page"`
	Pages        int                   `json:"pages"`
}
