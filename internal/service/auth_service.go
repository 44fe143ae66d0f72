package service

import (
	"context"
	"time"

	"financeiro/internal/dto"
	"financeiro/internal/models"
	"financeiro/internal/repository"
	"financeiro/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserStore interface {
	Create(ctx context.Context, q repository.Querier, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, q repository.Querier, id uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, q repository.Querier, id uuid.UUID) (int64, error)
	UpdateLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
}

type AuthService struct {
	userStore  UserStore
	tx         TxRunner
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

func NewAuthService(userStore UserStore, tx TxRunner, jwtManager *auth.JWTManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		tx:         tx,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Name == "" {
		return nil, validationErr("name", "required")
	}
	if req.Username == "" {
		return nil, validationErr("username", "required")
	}
	if req.Email == "" {
		return nil, validationErr("email", "required")
	}
	if req.Password == "" {
		return nil, validationErr("password", "required")
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

	now := time.Now()
	user := &models.User{
		ID:         uuid.New(),
		Name:       req.Name,
		Username:   req.Username,
		Email:      req.Email,
		Password:   hashedPassword,
		Role:       models.RoleUser,
		Department: req.Department,
		Status:     models.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.tx.RunInTx(ctx, func(q repository.Querier) error {
		return s.userStore.Create(ctx, q, user)
	})
	if err != nil {
		return nil, err
	}

	return s.tokenResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, ErrInactiveUser
	}

	if err := s.userStore.UpdateLastAccess(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("Failed to stamp last access", zap.Error(err))
	}

	return s.tokenResponse(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return s.tokenResponse(user)
}

func (s *AuthService) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Username, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         userToResponse(user),
	}, nil
}

func userToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		Department: user.Department,
		Status:     user.Status,
	}
}
