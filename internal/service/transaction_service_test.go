package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"
	"financeiro/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeTxRunner struct{}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(q repository.Querier) error) error {
	return fn(nil)
}

type fakeAuditStore struct {
	entries []*models.AuditLog
}

func (f *fakeAuditStore) Insert(ctx context.Context, q repository.Querier, entry *models.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTransactionStore struct {
	transactions []models.Transaction

	count    int64
	sums     map[models.TransactionKind]float64
	sumTotal float64

	listOwner   uuid.UUID
	listFilter  repository.TransactionFilter
	countOwner  uuid.UUID
	countFilter repository.TransactionFilter
	sumOwner    uuid.UUID
	sumFilter   repository.TransactionFilter

	inserted       []*models.Transaction
	updated        map[string]any
	updateAffected int64
	deleteAffected int64
}

func (f *fakeTransactionStore) List(ctx context.Context, ownerID uuid.UUID, flt repository.TransactionFilter) ([]models.Transaction, error) {
	f.listOwner = ownerID
	f.listFilter = flt
	return f.transactions, nil
}

func (f *fakeTransactionStore) Count(ctx context.Context, ownerID uuid.UUID, flt repository.TransactionFilter) (int64, error) {
	f.countOwner = ownerID
	f.countFilter = flt
	return f.count, nil
}

func (f *fakeTransactionStore) Sum(ctx context.Context, ownerID uuid.UUID, flt repository.TransactionFilter) (float64, error) {
	f.sumOwner = ownerID
	f.sumFilter = flt
	return f.sumTotal, nil
}

func (f *fakeTransactionStore) SumByKind(ctx context.Context, ownerID uuid.UUID, kind models.TransactionKind, from time.Time) (float64, error) {
	return f.sums[kind], nil
}

func (f *fakeTransactionStore) TopExpenseCategories(ctx context.Context, ownerID uuid.UUID, from time.Time, limit int) ([]models.CategoryTotal, error) {
	return nil, nil
}

func (f *fakeTransactionStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Transaction, error) {
	for i := range f.transactions {
		if f.transactions[i].ID == id && f.transactions[i].UserID == ownerID {
			return &f.transactions[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTransactionStore) Insert(ctx context.Context, q repository.Querier, t *models.Transaction) error {
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTransactionStore) Update(ctx context.Context, q repository.Querier, id, ownerID uuid.UUID, fields map[string]any) (int64, error) {
	f.updated = fields
	return f.updateAffected, nil
}

func (f *fakeTransactionStore) Delete(ctx context.Context, q repository.Querier, id, ownerID uuid.UUID) (int64, error) {
	return f.deleteAffected, nil
}

func newTransactionService(store *fakeTransactionStore) (*TransactionService, *fakeAuditStore) {
	audit := &fakeAuditStore{}
	return NewTransactionService(store, audit, &fakeTxRunner{}, zap.NewNop()), audit
}

func TestListDefaults(t *testing.T) {
	store := &fakeTransactionStore{}
	svc, _ := newTransactionService(store)
	owner := uuid.New()

	resp, err := svc.List(context.Background(), owner, &dto.ListTransactionsQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if store.listFilter.Kind != models.KindExpense {
		t.Errorf("Kind = %q, want %q", store.listFilter.Kind, models.KindExpense)
	}
	if store.listFilter.Offset != 0 || store.listFilter.Limit != 20 {
		t.Errorf("Offset/Limit = %d/%d, want 0/20", store.listFilter.Offset, store.listFilter.Limit)
	}
	if resp.Page != 1 || resp.Pages != 1 {
		t.Errorf("Page/Pages = %d/%d, want 1/1", resp.Page, resp.Pages)
	}

	// With no caller-supplied range, the period total defaults to
	// first-of-month through today.
	if store.sumFilter.DateFrom == nil || store.sumFilter.DateTo == nil {
		t.Fatal("sum filter dates should be defaulted")
	}
	now := time.Now()
	wantStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if !store.sumFilter.DateFrom.Equal(wantStart) {
		t.Errorf("DateFrom = %v, want %v", store.sumFilter.DateFrom, wantStart)
	}
}

func TestListPagination(t *testing.T) {
	store := &fakeTransactionStore{count: 45}
	svc, _ := newTransactionService(store)

	resp, err := svc.List(context.Background(), uuid.New(), &dto.ListTransactionsQuery{
		Page:     "3",
		PageSize: "20",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if store.listFilter.Offset != 40 {
		t.Errorf("Offset = %d, want 40", store.listFilter.Offset)
	}
	if resp.Pages != 3 {
		t.Errorf("Pages = %d, want 3", resp.Pages)
	}
	if resp.Stats.Count != 45 {
		t.Errorf("Count = %d, want 45", resp.Stats.Count)
	}
}

func TestListMalformedPagination(t *testing.T) {
	svc, _ := newTransactionService(&fakeTransactionStore{})

	for _, tt := range []struct {
		query     dto.ListTransactionsQuery
		wantField string
	}{
		{dto.ListTransactionsQuery{Page: "abc"}, "page"},
		{dto.ListTransactionsQuery{PageSize: "1.5"}, "page_size"},
	} {
		_, err := svc.List(context.Background(), uuid.New(), &tt.query)
		var inputErr *InvalidInputError
		if !errors.As(err, &inputErr) {
			t.Fatalf("List() error = %v, want InvalidInputError", err)
		}
		if inputErr.Field != tt.wantField {
			t.Errorf("Field = %q, want %q", inputErr.Field, tt.wantField)
		}
	}
}

func TestListFilterNormalization(t *testing.T) {
	store := &fakeTransactionStore{}
	svc, _ := newTransactionService(store)

	_, err := svc.List(context.Background(), uuid.New(), &dto.ListTransactionsQuery{
		Kind:     "income",
		Category: "all",
		Status:   "paid",
		Search:   "Realty",
		DateFrom: "not-a-date",
		DateTo:   "2026-02-30",
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	f := store.listFilter
	if f.Kind != models.KindIncome {
		t.Errorf("Kind = %q, want income", f.Kind)
	}
	if f.Category != "" {
		t.Errorf("Category = %q, want empty (\"all\" means no filter)", f.Category)
	}
	if f.Status != "paid" {
		t.Errorf("Status = %q, want paid", f.Status)
	}
	if f.Search != "Realty" {
		t.Errorf("Search = %q, want Realty", f.Search)
	}
	if f.DateFrom != nil || f.DateTo != nil {
		t.Error("invalid date strings must be ignored, not applied")
	}
}

func TestListTenantScoping(t *testing.T) {
	store := &fakeTransactionStore{}
	svc, _ := newTransactionService(store)
	owner := uuid.New()

	if _, err := svc.List(context.Background(), owner, &dto.ListTransactionsQuery{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	for name, got := range map[string]uuid.UUID{
		"list":  store.listOwner,
		"count": store.countOwner,
		"sum":   store.sumOwner,
	} {
		if got != owner {
			t.Errorf("%s call scoped to %v, want %v", name, got, owner)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTransactionRequest
		wantField string
		wantInput bool
	}{
		{
			name:      "missing description",
			req:       dto.CreateTransactionRequest{Amount: float64(10), OccurrenceDate: "2026-08-01", Category: "fixed"},
			wantField: "description",
		},
		{
			name:      "missing category",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: float64(10), OccurrenceDate: "2026-08-01"},
			wantField: "category",
		},
		{
			name:      "missing amount",
			req:       dto.CreateTransactionRequest{Description: "Rent", OccurrenceDate: "2026-08-01", Category: "fixed"},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: float64(-5), OccurrenceDate: "2026-08-01", Category: "fixed"},
			wantField: "amount",
		},
		{
			name:      "zero amount",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: float64(0), OccurrenceDate: "2026-08-01", Category: "fixed"},
			wantField: "amount",
		},
		{
			name:      "non-numeric amount",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: "abc", OccurrenceDate: "2026-08-01", Category: "fixed"},
			wantField: "amount",
			wantInput: true,
		},
		{
			name:      "bad occurrence date",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: float64(10), OccurrenceDate: "01/08/2026", Category: "fixed"},
			wantField: "occurrence_date",
		},
		{
			name:      "bad due date",
			req:       dto.CreateTransactionRequest{Description: "Rent", Amount: float64(10), OccurrenceDate: "2026-08-01", DueDate: "soon", Category: "fixed"},
			wantField: "due_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeTransactionStore{}
			svc, audit := newTransactionService(store)

			_, err := svc.Create(context.Background(), uuid.New(), "127.0.0.1", &tt.req)
			if err == nil {
				t.Fatal("Create() expected error")
			}

			var field string
			if tt.wantInput {
				var inputErr *InvalidInputError
				if !errors.As(err, &inputErr) {
					t.Fatalf("error = %v, want InvalidInputError", err)
				}
				field = inputErr.Field
			} else {
				var validationError *ValidationError
				if !errors.As(err, &validationError) {
					t.Fatalf("error = %v, want ValidationError", err)
				}
				field = validationError.Field
			}
			if field != tt.wantField {
				t.Errorf("Field = %q, want %q", field, tt.wantField)
			}

			// Validation failures must leave the store untouched.
			if len(store.inserted) != 0 {
				t.Error("no row may be persisted on validation failure")
			}
			if len(audit.entries) != 0 {
				t.Error("no audit entry may be written on validation failure")
			}
		})
	}
}

func TestCreateDefaultsAndAudit(t *testing.T) {
	store := &fakeTransactionStore{}
	svc, audit := newTransactionService(store)
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, "10.0.0.1", &dto.CreateTransactionRequest{
		Description:    "Electricity",
		Amount:         "350.50",
		OccurrenceDate: "2026-08-15",
		Category:       "fixed",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d rows, want 1", len(store.inserted))
	}
	created := store.inserted[0]
	if created.Kind != models.KindExpense {
		t.Errorf("Kind = %q, want default expense", created.Kind)
	}
	if created.Status != models.StatusPending {
		t.Errorf("Status = %q, want default pending", created.Status)
	}
	if created.Amount != 350.50 {
		t.Errorf("Amount = %v, want 350.50", created.Amount)
	}
	if created.UserID != owner {
		t.Errorf("UserID = %v, want %v", created.UserID, owner)
	}
	if resp.ID != created.ID.String() {
		t.Errorf("response id = %q, want %q", resp.ID, created.ID)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	if audit.entries[0].Action != models.AuditActionCreate {
		t.Errorf("audit action = %q, want create", audit.entries[0].Action)
	}
	if audit.entries[0].IP != "10.0.0.1" {
		t.Errorf("audit ip = %q, want 10.0.0.1", audit.entries[0].IP)
	}
}

func TestUpdateNotFound(t *testing.T) {
	store := &fakeTransactionStore{}
	svc, _ := newTransactionService(store)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), "", &dto.UpdateTransactionRequest{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if store.updated != nil {
		t.Error("store must stay unchanged for unknown ids")
	}
}

func TestUpdateCrossTenantIsNotFound(t *testing.T) {
	other := uuid.New()
	existing := models.Transaction{ID: uuid.New(), UserID: other}
	store := &fakeTransactionStore{transactions: []models.Transaction{existing}}
	svc, _ := newTransactionService(store)

	_, err := svc.Update(context.Background(), uuid.New(), existing.ID, "", &dto.UpdateTransactionRequest{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	owner := uuid.New()
	existing := models.Transaction{
		ID:             uuid.New(),
		Description:    "Rent",
		Amount:         1500,
		OccurrenceDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Category:       "fixed",
		Kind:           models.KindExpense,
		Status:         models.StatusPending,
		UserID:         owner,
	}
	store := &fakeTransactionStore{transactions: []models.Transaction{existing}, updateAffected: 1}
	svc, audit := newTransactionService(store)

	status := "paid"
	due := ""
	_, err := svc.Update(context.Background(), owner, existing.ID, "", &dto.UpdateTransactionRequest{
		Status:  &status,
		DueDate: &due,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if store.updated["status"] != "paid" {
		t.Errorf("status field = %v, want paid", store.updated["status"])
	}
	if v, ok := store.updated["due_date"]; !ok || v != nil {
		t.Errorf("empty due_date must clear the column, got %v", v)
	}
	if _, ok := store.updated["description"]; ok {
		t.Error("unsupplied fields must not be touched")
	}
	if _, ok := store.updated["updated_at"]; !ok {
		t.Error("updated_at must be stamped")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditActionUpdate {
		t.Error("update must write one audit entry")
	}
}

func TestDelete(t *testing.T) {
	store := &fakeTransactionStore{deleteAffected: 1}
	svc, audit := newTransactionService(store)

	if err := svc.Delete(context.Background(), uuid.New(), uuid.New(), ""); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != models.AuditActionDelete {
		t.Error("delete must write one audit entry")
	}

	store.deleteAffected = 0
	if err := svc.Delete(context.Background(), uuid.New(), uuid.New(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMonthlyStats(t *testing.T) {
	store := &fakeTransactionStore{
		sums: map[models.TransactionKind]float64{
			models.KindExpense: 7100,
			models.KindIncome:  10500,
		},
	}
	svc, _ := newTransactionService(store)

	resp, err := svc.MonthlyStats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("MonthlyStats() error = %v", err)
	}
	if resp.MonthBalance != 3400 {
		t.Errorf("MonthBalance = %v, want 3400", resp.MonthBalance)
	}
}
