package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"
	"financeiro/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	dateLayout      = "2006-01-02"
)

type TransactionStore interface {
	List(ctx context.Context, ownerID uuid.UUID, f repository.TransactionFilter) ([]models.Transaction, error)
	Count(ctx context.Context, ownerID uuid.UUID, f repository.TransactionFilter) (int64, error)
	Sum(ctx context.Context, ownerID uuid.UUID, f repository.TransactionFilter) (float64, error)
	SumByKind(ctx context.Context, ownerID uuid.UUID, kind models.TransactionKind, from time.Time) (float64, error)
	TopExpenseCategories(ctx context.Context, ownerID uuid.UUID, from time.Time, limit int) ([]models.CategoryTotal, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Transaction, error)
	Insert(ctx context.Context, q repository.Querier, t *models.Transaction) error
	Update(ctx context.Context, q repository.Querier, id, ownerID uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, q repository.Querier, id, ownerID uuid.UUID) (int64, error)
}

type AuditStore interface {
	Insert(ctx context.Context, q repository.Querier, entry *models.AuditLog) error
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(q repository.Querier) error) error
}

type TransactionService struct {
	store  TransactionStore
	audit  AuditStore
	tx     TxRunner
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, audit AuditStore, tx TxRunner, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		audit:  audit,
		tx:     tx,
		logger: logger,
	}
}

// List returns one page of the requester's transactions plus aggregate
// statistics. Every store call is scoped to ownerID.
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, q *dto.ListTransactionsQuery) (*dto.TransactionListResponse, error) {
	page, err := parsePositiveInt("page", q.Page, defaultPage)
	if err != nil {
		return nil, err
	}
	pageSize, err := parsePositiveInt("page_size", q.PageSize, defaultPageSize)
	if err != nil {
		return nil, err
	}

	f := repository.TransactionFilter{
		Kind:   models.TransactionKind(q.Kind),
		Search: q.Search,
	}
	if f.Kind == "" {
		f.Kind = models.KindExpense
	}
	if q.Category != "" && q.Category != "all" {
		f.Category = q.Category
	}
	if q.Status != "" && q.Status != "all" {
		f.Status = q.Status
	}
	// Unparseable date strings are ignored, not rejected.
	if t, err := time.Parse(dateLayout, q.DateFrom); err == nil {
		f.DateFrom = &t
	}
	if t, err := time.Parse(dateLayout, q.DateTo); err == nil {
		f.DateTo = &t
	}
	f.Offset = (page - 1) * pageSize
	f.Limit = pageSize

	count, err := s.store.Count(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.List(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	// The period total uses the full filter set; when the caller supplied no
	// date range it defaults to first-of-month through today.
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	sumFilter := f
	if sumFilter.DateFrom == nil {
		sumFilter.DateFrom = &monthStart
	}
	if sumFilter.DateTo == nil {
		today := now
		sumFilter.DateTo = &today
	}
	total, err := s.store.Sum(ctx, ownerID, sumFilter)
	if err != nil {
		return nil, err
	}

	// Month-to-date KPI sums are fixed, independent of the query filters.
	incomeTotal, err := s.store.SumByKind(ctx, ownerID, models.KindIncome, monthStart)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := s.store.SumByKind(ctx, ownerID, models.KindExpense, monthStart)
	if err != nil {
		return nil, err
	}

	pages := int((count + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *transactionToResponse(&transactions[i]))
	}

	return &dto.TransactionListResponse{
		Transactions: responses,
		Stats: dto.TransactionStats{
			Total:        total,
			IncomeTotal:  incomeTotal,
			ExpenseTotal: expenseTotal,
			Count:        count,
		},
		Page:  page,
		Pages: pages,
	}, nil
}

func (s *TransactionService) Get(ctx context.Context, ownerID, id uuid.UUID) (*dto.TransactionResponse, error) {
	t, err := s.store.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return transactionToResponse(t), nil
}

func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, ip string, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if req.Description == "" {
		return nil, validationErr("description", "required")
	}
	if req.Category == "" {
		return nil, validationErr("category", "required")
	}
	if req.Amount == nil {
		return nil, validationErr("amount", "required")
	}
	amount, err := coerceFloat("amount", req.Amount, 0)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, validationErr("amount", "must be greater than zero")
	}
	if req.OccurrenceDate == "" {
		return nil, validationErr("occurrence_date", "required")
	}
	occurrenceDate, err := time.Parse(dateLayout, req.OccurrenceDate)
	if err != nil {
		return nil, validationErr("occurrence_date", "must be a date in YYYY-MM-DD format")
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, validationErr("due_date", "must be a date in YYYY-MM-DD format")
		}
		dueDate = &d
	}

	kind := models.TransactionKind(req.Kind)
	if kind == "" {
		kind = models.KindExpense
	}
	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	now := time.Now()
	t := &models.Transaction{
		ID:             uuid.New(),
		Description:    req.Description,
		Amount:         amount,
		OccurrenceDate: occurrenceDate,
		DueDate:        dueDate,
		Category:       req.Category,
		Kind:           kind,
		Status:         status,
		Supplier:       req.Supplier,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		UserID:         ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.tx.RunInTx(ctx, func(q repository.Querier) error {
		if err := s.store.Insert(ctx, q, t); err != nil {
			return err
		}
		return s.audit.Insert(ctx, q, auditEntry(ownerID, models.AuditActionCreate, "transaction", t.ID, ip))
	})
	if err != nil {
		s.logger.Error("Failed to create transaction", zap.Error(err))
		return nil, err
	}

	return transactionToResponse(t), nil
}

func (s *TransactionService) Update(ctx context.Context, ownerID, id uuid.UUID, ip string, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	existing, err := s.store.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields, err := buildUpdateFields(req)
	if err != nil {
		return nil, err
	}
	fields["updated_at"] = time.Now()

	err = s.tx.RunInTx(ctx, func(q repository.Querier) error {
		affected, err := s.store.Update(ctx, q, id, ownerID, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return s.audit.Insert(ctx, q, auditEntry(ownerID, models.AuditActionUpdate, "transaction", id, ip))
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("Failed to update transaction", zap.Error(err))
		}
		return nil, err
	}

	return s.Get(ctx, ownerID, existing.ID)
}

func (s *TransactionService) Delete(ctx context.Context, ownerID, id uuid.UUID, ip string) error {
	err := s.tx.RunInTx(ctx, func(q repository.Querier) error {
		affected, err := s.store.Delete(ctx, q, id, ownerID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return s.audit.Insert(ctx, q, auditEntry(ownerID, models.AuditActionDelete, "transaction", id, ip))
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to delete transaction", zap.Error(err))
	}
	return err
}

// MonthlyStats backs the dashboard: month-to-date totals and the top five
// expense categories.
func (s *TransactionService) MonthlyStats(ctx context.Context, ownerID uuid.UUID) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	expenses, err := s.store.SumByKind(ctx, ownerID, models.KindExpense, monthStart)
	if err != nil {
		return nil, err
	}
	income, err := s.store.SumByKind(ctx, ownerID, models.KindIncome, monthStart)
	if err != nil {
		return nil, err
	}
	topCategories, err := s.store.TopExpenseCategories(ctx, ownerID, monthStart, 5)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		MonthExpenses: expenses,
		MonthIncome:   income,
		MonthBalance:  income - expenses,
		TopCategories: topCategories,
	}, nil
}

// buildUpdateFields validates the patch and maps it to column assignments.
// Runs entirely before any store write.
func buildUpdateFields(req *dto.UpdateTransactionRequest) (map[string]any, error) {
	fields := map[string]any{}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, validationErr("description", "required")
		}
		fields["description"] = *req.Description
	}
	if req.Amount != nil {
		amount, err := coerceFloat("amount", req.Amount, 0)
		if err != nil {
			return nil, err
		}
		if amount <= 0 {
			return nil, validationErr("amount", "must be greater than zero")
		}
		fields["amount"] = amount
	}
	if req.OccurrenceDate != nil {
		d, err := time.Parse(dateLayout, *req.OccurrenceDate)
		if err != nil {
			return nil, validationErr("occurrence_date", "must be a date in YYYY-MM-DD format")
		}
		fields["occurrence_date"] = d
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			fields["due_date"] = nil
		} else {
			d, err := time.Parse(dateLayout, *req.DueDate)
			if err != nil {
				return nil, validationErr("due_date", "must be a date in YYYY-MM-DD format")
			}
			fields["due_date"] = d
		}
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, validationErr("category", "required")
		}
		fields["category"] = *req.Category
	}
	if req.Kind != nil {
		fields["kind"] = *req.Kind
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Supplier != nil {
		fields["supplier"] = *req.Supplier
	}
	if req.PaymentMethod != nil {
		fields["payment_method"] = *req.PaymentMethod
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	return fields, nil
}

func parsePositiveInt(field, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidInputErr(field)
	}
	if n < 1 {
		return def, nil
	}
	return n, nil
}

func auditEntry(userID uuid.UUID, action, resource string, subject uuid.UUID, ip string) *models.AuditLog {
	return &models.AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Resource:  resource,
		Details:   fmt.Sprintf("%s %s", resource, subject),
		IP:        ip,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

func transactionToResponse(t *models.Transaction) *dto.TransactionResponse {
	var dueDate *string
	if t.DueDate != nil {
		d := t.DueDate.Format(dateLayout)
		dueDate = &d
	}
	return &dto.TransactionResponse{
		ID:             t.ID.String(),
		Description:    t.Description,
		Amount:         t.Amount,
		OccurrenceDate: t.OccurrenceDate.Format(dateLayout),
		DueDate:        dueDate,
		Category:       t.Category,
		Kind:           string(t.Kind),
		Status:         t.Status,
		Supplier:       t.Supplier,
		PaymentMethod:  t.PaymentMethod,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
}
