package service

import (
	"context"
	"errors"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SettingsStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	Insert(ctx context.Context, s *models.UserSettings) error
	Update(ctx context.Context, userID uuid.UUID, fields map[string]any) error
}

type SettingsService struct {
	store  SettingsStore
	logger *zap.Logger
}

func NewSettingsService(store SettingsStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: logger,
	}
}

// Get returns the user's settings, creating a default row on first access.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*dto.SettingsResponse, error) {
	settings, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

// Update applies a partial patch. The whole patch is validated before any
// store write.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	fields := map[string]any{}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Timezone != nil {
		fields["timezone"] = *req.Timezone
	}
	if req.NotificationEmail != nil {
		fields["notification_email"] = *req.NotificationEmail
	}
	if req.AlertLimit != nil {
		limit, err := coerceFloat("alert_limit", req.AlertLimit, 0)
		if err != nil {
			return nil, err
		}
		fields["alert_limit"] = limit
	}
	fields["updated_at"] = time.Now()

	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, userID, fields); err != nil {
		s.logger.Error("Failed to update settings", zap.Error(err))
		return nil, err
	}

	settings, err := s.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settingsToResponse(settings), nil
}

func (s *SettingsService) getOrCreate(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	settings, err := s.store.GetByUser(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	settings = &models.UserSettings{
		ID:        uuid.New(),
		Currency:  models.DefaultCurrency,
		Timezone:  models.DefaultTimezone,
		UserID:    userID,
		UpdatedAt: time.Now(),
	}
	if err := s.store.Insert(ctx, settings); err != nil {
		s.logger.Error("Failed to create default settings", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

func settingsToResponse(s *models.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Currency:          s.Currency,
		Timezone:          s.Timezone,
		NotificationEmail: s.NotificationEmail,
		AlertLimit:        s.AlertLimit,
	}
}
