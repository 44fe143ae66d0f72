package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"
	"financeiro/internal/repository"
	"financeiro/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserService implements the admin-only user management operations. Role
// gating happens in the middleware; actingUserID is only needed for the
// self-delete guard and audit records.
type UserService struct {
	userStore UserStore
	audit     AuditStore
	tx        TxRunner
	logger    *zap.Logger
}

func NewUserService(userStore UserStore, audit AuditStore, tx TxRunner, logger *zap.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		audit:     audit,
		tx:        tx,
		logger:    logger,
	}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userToResponse(&users[i]))
	}

	return responses, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := userToResponse(user)
	return &resp, nil
}

func (s *UserService) Create(ctx context.Context, actingUserID uuid.UUID, ip string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	for field, value := range map[string]string{
		"name":     req.Name,
		"username": req.Username,
		"email":    req.Email,
		"password": req.Password,
		"role":     req.Role,
	} {
		if value == "" {
			return nil, validationErr(field, "required")
		}
	}
	if !strings.Contains(req.Email, "@") {
		return nil, validationErr("email", "must be a valid email address")
	}
	if !validRole(req.Role) {
		return nil, validationErr("role", "must be one of admin, manager, user")
	}

	if existing, _ := s.userStore.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrUserExists
	}
	if existing, _ := s.userStore.GetByUsername(ctx, req.Username); existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.UserStatusActive
	}

	now := time.Now()
	user := &models.User{
		ID:         uuid.New(),
		Name:       req.Name,
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		Role:       req.Role,
		Department: req.Department,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.tx.RunInTx(ctx, func(q repository.Querier) error {
		if err := s.userStore.Create(ctx, q, user); err != nil {
			return err
		}
		return s.audit.Insert(ctx, q, auditEntry(actingUserID, models.AuditActionCreate, "user", user.ID, ip))
	})
	if err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	resp := userToResponse(user)
	return &resp, nil
}

func (s *UserService) Update(ctx context.Context, actingUserID, id uuid.UUID, ip string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, validationErr("name", "required")
		}
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, validationErr("role", "must be one of admin, manager, user")
		}
		fields["role"] = *req.Role
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}
	fields["updated_at"] = time.Now()

	err := s.tx.RunInTx(ctx, func(q repository.Querier) error {
		affected, err := s.userStore.Update(ctx, q, id, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return s.audit.Insert(ctx, q, auditEntry(actingUserID, models.AuditActionUpdate, "user", id, ip))
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("Failed to update user", zap.Error(err))
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, actingUserID, id uuid.UUID, ip string) error {
	if id == actingUserID {
		return validationErr("id", "cannot delete your own account")
	}

	err := s.tx.RunInTx(ctx, func(q repository.Querier) error {
		affected, err := s.userStore.Delete(ctx, q, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}
		return s.audit.Insert(ctx, q, auditEntry(actingUserID, models.AuditActionDelete, "user", id, ip))
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("Failed to delete user", zap.Error(err))
	}
	return err
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleUser:
		return true
	}
	return false
}
