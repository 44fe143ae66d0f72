package repository

import (
	"context"
	"time"

	"financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "description", "amount", "occurrence_date", "due_date", "category",
	"kind", "status", "supplier", "payment_method", "notes", "user_id",
	"created_at", "updated_at",
}

// TransactionFilter narrows a tenant-scoped transaction query. Zero values
// mean "no filter" except Kind, which is always applied.
type TransactionFilter struct {
	Kind     models.TransactionKind
	Category string
	Status   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// listWhere builds the conjunction of all active filter predicates. Every
// query goes through here, so the owner scoping cannot be skipped.
func listWhere(ownerID uuid.UUID, f TransactionFilter) squirrel.And {
	where := squirrel.And{
		squirrel.Eq{"user_id": ownerID},
		squirrel.Eq{"kind": f.Kind},
	}
	if f.Category != "" {
		where = append(where, squirrel.Eq{"category": f.Category})
	}
	if f.Status != "" {
		where = append(where, squirrel.Eq{"status": f.Status})
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"supplier": pattern},
		})
	}
	if f.DateFrom != nil {
		where = append(where, squirrel.GtOrEq{"occurrence_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		where = append(where, squirrel.LtOrEq{"occurrence_date": *f.DateTo})
	}
	return where
}

func (r *TransactionRepository) List(ctx context.Context, ownerID uuid.UUID, f TransactionFilter) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(listWhere(ownerID, f)).
		OrderBy("occurrence_date DESC").
		Offset(uint64(f.Offset)).
		Limit(uint64(f.Limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.Description, &t.Amount, &t.OccurrenceDate, &t.DueDate, &t.Category,
			&t.Kind, &t.Status, &t.Supplier, &t.PaymentMethod, &t.Notes, &t.UserID,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) Count(ctx context.Context, ownerID uuid.UUID, f TransactionFilter) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(listWhere(ownerID, f)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *TransactionRepository) Sum(ctx context.Context, ownerID uuid.UUID, f TransactionFilter) (float64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(listWhere(ownerID, f)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

// SumByKind totals a user's transactions of one kind from a given date on.
// Used for the fixed monthly KPI figures.
func (r *TransactionRepository) SumByKind(ctx context.Context, ownerID uuid.UUID, kind models.TransactionKind, from time.Time) (float64, error) {
	query := squirrel.Select("COALESCE(SUM(amount), 0)").
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": ownerID},
			squirrel.Eq{"kind": kind},
			squirrel.GtOrEq{"occurrence_date": from},
		}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *TransactionRepository) TopExpenseCategories(ctx context.Context, ownerID uuid.UUID, from time.Time, limit int) ([]models.CategoryTotal, error) {
	query := squirrel.Select("category", "SUM(amount) AS total").
		From("transactions").
		Where(squirrel.And{
			squirrel.Eq{"user_id": ownerID},
			squirrel.Eq{"kind": models.KindExpense},
			squirrel.GtOrEq{"occurrence_date": from},
		}).
		GroupBy("category").
		OrderBy("total DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}

func (r *TransactionRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t models.Transaction
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&t.ID, &t.Description, &t.Amount, &t.OccurrenceDate, &t.DueDate, &t.Category,
		&t.Kind, &t.Status, &t.Supplier, &t.PaymentMethod, &t.Notes, &t.UserID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TransactionRepository) Insert(ctx context.Context, q Querier, t *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(
			t.ID, t.Description, t.Amount, t.OccurrenceDate, t.DueDate, t.Category,
			t.Kind, t.Status, t.Supplier, t.PaymentMethod, t.Notes, t.UserID,
			t.CreatedAt, t.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

// Update applies a partial field set to an owned transaction and reports how
// many rows matched. Zero rows means the id is absent or owned by someone else.
func (r *TransactionRepository) Update(ctx context.Context, q Querier, id, ownerID uuid.UUID, fields map[string]any) (int64, error) {
	query := squirrel.Update("transactions").
		SetMap(fields).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *TransactionRepository) Delete(ctx context.Context, q Querier, id, ownerID uuid.UUID) (int64, error) {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
