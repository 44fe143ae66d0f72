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

var userColumns = []string{
	"id", "name", "username", "email", "password", "role", "department",
	"status", "last_access", "created_at", "updated_at",
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, q Querier, user *models.User) error {
	query := squirrel.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.Name, user.Username, user.Email, user.Password, user.Role,
			user.Department, user.Status, user.LastAccess, user.CreatedAt, user.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Name, &user.Username, &user.Email, &user.Password, &user.Role,
		&user.Department, &user.Status, &user.LastAccess, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
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

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Username, &user.Email, &user.Password, &user.Role,
			&user.Department, &user.Status, &user.LastAccess, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, q Querier, id uuid.UUID, fields map[string]any) (int64, error) {
	query := squirrel.Update("users").
		SetMap(fields).
		Where(squirrel.Eq{"id": id}).
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

func (r *UserRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) (int64, error) {
	query := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
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

// UpdateLastAccess stamps a successful login. Best effort, callers may ignore
// the error.
func (r *UserRepository) UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := squirrel.Update("users").
		Set("last_access", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
