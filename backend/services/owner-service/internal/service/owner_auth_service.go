package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"isuride/backend/services/owner-service/internal/models"
	redisstore "isuride/backend/services/owner-service/internal/redis"
	"isuride/backend/services/owner-service/internal/repository"
)

var (
	// ErrOwnerNotFound represents an unknown or invalid owner credential.
	ErrOwnerNotFound = errors.New("auth: owner not found")
	// ErrBearerDisabled is returned for bearer tokens when no JWT secret is configured.
	ErrBearerDisabled = errors.New("auth: bearer tokens are not enabled")
)

// OwnerRepository defines owner lookups used by the service.
type OwnerRepository interface {
	GetByAccessToken(ctx context.Context, token string) (*models.Owner, error)
	GetByID(ctx context.Context, id string) (*models.Owner, error)
}

// OwnerCache caches owners by session token.
type OwnerCache interface {
	Get(ctx context.Context, token string) (*models.Owner, error)
	Save(ctx context.Context, token string, owner *models.Owner) error
}

// OwnerAuthService resolves request credentials to owners.
type OwnerAuthService struct {
	repo   OwnerRepository
	cache  OwnerCache
	tokens *TokenService
	logger *zap.Logger
}

// NewOwnerAuthService builds the service. cache and tokens may be nil.
func NewOwnerAuthService(repo OwnerRepository, cache OwnerCache, tokens *TokenService, logger *zap.Logger) *OwnerAuthService {
	return &OwnerAuthService{
		repo:   repo,
		cache:  cache,
		tokens: tokens,
		logger: logger,
	}
}

// AuthenticateSession resolves an owner_session access token.
func (s *OwnerAuthService) AuthenticateSession(ctx context.Context, token string) (*models.Owner, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrOwnerNotFound
	}

	if s.cache != nil {
		owner, err := s.cache.Get(ctx, token)
		if err == nil {
			return owner, nil
		}
		if !errors.Is(err, redisstore.ErrCacheMiss) {
			s.logger.Warn("owner session cache read failed", zap.Error(err))
		}
	}

	owner, err := s.repo.GetByAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, token, owner); err != nil {
			s.logger.Warn("failed to cache owner session", zap.Error(err))
		}
	}
	return owner, nil
}

// AuthenticateBearer resolves a signed owner JWT.
func (s *OwnerAuthService) AuthenticateBearer(ctx context.Context, raw string) (*models.Owner, error) {
	if s.tokens == nil {
		return nil, ErrBearerDisabled
	}
	claims, err := s.tokens.ValidateToken(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrOwnerNotFound
	}

	owner, err := s.repo.GetByID(ctx, claims.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return owner, nil
}
