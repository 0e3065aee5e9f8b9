package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/internal/authz"
	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
	"staffly/internal/dto/request"
	"staffly/internal/dto/response"
	"staffly/pkg/utils"
)

type AuthService interface {
	// Login verifies the credentials and, on success, issues a session.
	// The session is returned alongside the response so the transport
	// layer can set the cookie with the right lifetime.
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, *entity.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.AuthResponse, *entity.Session, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, nil, apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	email := utils.NormalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to look up user for login", zap.Error(err), zap.String("email", email))
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Unknown email, wrong password and deactivated account all surface
	// the same error; only the logs tell them apart.
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", email))
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login with wrong password", zap.String("user_id", user.ID.String()))
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Warn("Login on deactivated account", zap.String("user_id", user.ID.String()))
		return nil, nil, apperrors.ErrInactiveAccount
	}

	session, err := s.createSession(ctx, user.ID, req.Remember, userAgent, ip)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("remember", req.Remember),
	)

	return response.AuthToResponse(user, session, authz.DashboardPath(user.Role)), session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		s.log.Warn("Logout with malformed token", zap.Error(err))
		return apperrors.Validationf("invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, remember bool, userAgent, ip string) (*entity.Session, error) {
	ttl := time.Duration(s.config.Session.TTLHours) * time.Hour
	if remember {
		ttl = time.Duration(s.config.Session.RememberDays) * 24 * time.Hour
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:     userID,
		Token:      uuid.New(),
		Persistent: remember,
		ExpiresAt:  time.Now().Add(ttl),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
