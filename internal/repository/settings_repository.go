package repository

import (
	"context"

	"financeiro/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var settingsColumns = []string{
	"id", "currency", "timezone", "notification_email", "alert_limit",
	"user_id", "updated_at",
}

type SettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SettingsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	query := squirrel.Select(settingsColumns...).
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s models.UserSettings
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.Currency, &s.Timezone, &s.NotificationEmail, &s.AlertLimit,
		&s.UserID, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SettingsRepository) Insert(ctx context.Context, s *models.UserSettings) error {
	query := squirrel.Insert("user_settings").
		Columns(settingsColumns...).
		Values(s.ID, s.Currency, s.Timezone, s.NotificationEmail, s.AlertLimit, s.UserID, s.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *SettingsRepository) Update(ctx context.Context, userID uuid.UUID, fields map[string]any) error {
	query := squirrel.Update("user_settings").
		SetMap(fields).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
