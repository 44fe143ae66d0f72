package service

import (
	"context"
	"errors"
	"testing"

	"financeiro/internal/dto"
	"financeiro/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeSettingsStore struct {
	settings *models.UserSettings
	inserted int
	updated  map[string]any
}

func (f *fakeSettingsStore) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	if f.settings == nil || f.settings.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return f.settings, nil
}

func (f *fakeSettingsStore) Insert(ctx context.Context, s *models.UserSettings) error {
	f.inserted++
	f.settings = s
	return nil
}

func (f *fakeSettingsStore) Update(ctx context.Context, userID uuid.UUID, fields map[string]any) error {
	f.updated = fields
	if v, ok := fields["currency"]; ok {
		f.settings.Currency = v.(string)
	}
	if v, ok := fields["notification_email"]; ok {
		f.settings.NotificationEmail = v.(string)
	}
	if v, ok := fields["alert_limit"]; ok {
		f.settings.AlertLimit = v.(float64)
	}
	return nil
}

func TestSettingsGetCreatesDefaults(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store, zap.NewNop())
	owner := uuid.New()

	resp, err := svc.Get(context.Background(), owner)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if store.inserted != 1 {
		t.Fatalf("inserted %d rows, want 1", store.inserted)
	}
	if resp.Currency != models.DefaultCurrency {
		t.Errorf("Currency = %q, want %q", resp.Currency, models.DefaultCurrency)
	}
	if resp.Timezone != models.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", resp.Timezone, models.DefaultTimezone)
	}
	if store.settings.UserID != owner {
		t.Errorf("row scoped to %v, want %v", store.settings.UserID, owner)
	}

	// Second access reuses the row.
	if _, err := svc.Get(context.Background(), owner); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if store.inserted != 1 {
		t.Errorf("inserted %d rows after second access, want 1", store.inserted)
	}
}

func TestSettingsUpdatePartial(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store, zap.NewNop())
	owner := uuid.New()

	email := "alerts@example.com"
	resp, err := svc.Update(context.Background(), owner, &dto.UpdateSettingsRequest{
		NotificationEmail: &email,
		AlertLimit:        "2500.50",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if resp.NotificationEmail != email {
		t.Errorf("NotificationEmail = %q, want %q", resp.NotificationEmail, email)
	}
	if resp.AlertLimit != 2500.50 {
		t.Errorf("AlertLimit = %v, want 2500.50", resp.AlertLimit)
	}
	// Unsupplied fields keep their defaults.
	if resp.Currency != models.DefaultCurrency {
		t.Errorf("Currency = %q, want default %q", resp.Currency, models.DefaultCurrency)
	}
	if _, ok := store.updated["currency"]; ok {
		t.Error("unsupplied fields must not be touched")
	}
}

func TestSettingsUpdateInvalidAlertLimit(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store, zap.NewNop())

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateSettingsRequest{
		AlertLimit: "not-a-number",
	})
	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Update() error = %v, want InvalidInputError", err)
	}
	if inputErr.Field != "alert_limit" {
		t.Errorf("Field = %q, want alert_limit", inputErr.Field)
	}
	if store.updated != nil {
		t.Error("no store write may happen on validation failure")
	}
}
