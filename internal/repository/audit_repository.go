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

var auditColumns = []string{"id", "action", "resource", "details", "ip", "user_id", "created_at"}

// AuditFilter narrows the admin audit-log listing.
type AuditFilter struct {
	Since  time.Time
	Action string
	UserID *uuid.UUID
	Limit  int
}

type AuditRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAuditRepository(db *pgxpool.Pool, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Insert takes a Querier so an audit row can join the transaction of the
// mutation it records.
func (r *AuditRepository) Insert(ctx context.Context, q Querier, entry *models.AuditLog) error {
	query := squirrel.Insert("audit_logs").
		Columns(auditColumns...).
		Values(entry.ID, entry.Action, entry.Resource, entry.Details, entry.IP, entry.UserID, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *AuditRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	where := squirrel.And{
		squirrel.GtOrEq{"created_at": f.Since},
	}
	if f.Action != "" {
		where = append(where, squirrel.Eq{"action": f.Action})
	}
	if f.UserID != nil {
		where = append(where, squirrel.Eq{"user_id": *f.UserID})
	}

	query := squirrel.Select(auditColumns...).
		From("audit_logs").
		Where(where).
		OrderBy("created_at DESC").
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

	var entries []models.AuditLog
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.Action, &e.Resource, &e.Details, &e.IP, &e.UserID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
