package service

import (
	"context"
	"strconv"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"
	"financeiro/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAuditWindowDays = 7
	auditListLimit         = 100
)

type AuditLister interface {
	List(ctx context.Context, f repository.AuditFilter) ([]models.AuditLog, error)
}

type AuditService struct {
	store  AuditLister
	logger *zap.Logger
}

func NewAuditService(store AuditLister, logger *zap.Logger) *AuditService {
	return &AuditService{
		store:  store,
		logger: logger,
	}
}

func (s *AuditService) List(ctx context.Context, q *dto.AuditLogQuery) ([]dto.AuditLogResponse, error) {
	days := defaultAuditWindowDays
	if q.Days != "" {
		n, err := strconv.Atoi(q.Days)
		if err != nil || n < 1 {
			return nil, invalidInputErr("days")
		}
		days = n
	}

	f := repository.AuditFilter{
		Since: time.Now().AddDate(0, 0, -days),
		Limit: auditListLimit,
	}
	if q.Action != "" && q.Action != "all" {
		f.Action = q.Action
	}
	if q.UserID != "" && q.UserID != "all" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return nil, invalidInputErr("user_id")
		}
		f.UserID = &id
	}

	entries, err := s.store.List(ctx, f)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, dto.AuditLogResponse{
			ID:        e.ID.String(),
			Action:    e.Action,
			Resource:  e.Resource,
			Details:   e.Details,
			IP:        e.IP,
			UserID:    e.UserID.String(),
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}
