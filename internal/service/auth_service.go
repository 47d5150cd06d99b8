package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/stories-service/internal/auth"
	"github.com/spec-kit/stories-service/internal/config"
	"github.com/spec-kit/stories-service/internal/domain"
	"github.com/spec-kit/stories-service/internal/events"
	"github.com/spec-kit/stories-service/internal/repository"
	apperrors "github.com/spec-kit/stories-service/pkg/util"
)

// AuthService owns credential issuance and verification: registration,
// login, and the token manager the gateway verifies against.
type AuthService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	now        func() time.Time
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Accounts   repository.AccountRepository
	Dispatcher events.Dispatcher
	// Now overrides the clock; nil defaults to time.Now.
	Now func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, deps AuthDependencies) *AuthService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		accounts:   deps.Accounts,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), now),
		bcryptCost: cfg.Auth.BcryptCost,
		now:        now,
	}
}

// Register creates an account for a new handle and mints its first token.
// A taken handle fails with a conflict; the raw secret is hashed and
// discarded, never stored or logged.
func (s *AuthService) Register(ctx context.Context, handle, secret string) (*domain.Account, string, time.Time, error) {
	if _, err := s.accounts.GetByHandle(ctx, handle); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("handle already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
	}

	hash, err := auth.HashPassword(secret, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	account := &domain.Account{Handle: handle, PasswordHash: hash}
	if err := s.accounts.Create(ctx, account); err != nil {
		// the unique constraint closes the check-then-insert race
		if errors.Is(err, repository.ErrDuplicateHandle) {
			return nil, "", time.Time{}, apperrors.NewConflict("handle already exists")
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
	}

	token, exp, err := s.tokenMgr.Issue(account.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{Handle: account.Handle})
	return account, token, exp, nil
}

// Authenticate verifies a handle/secret pair and mints a fresh token.
// Unknown handle and digest mismatch return the same error kind so the
// response does not reveal which check failed.
func (s *AuthService) Authenticate(ctx context.Context, handle, secret string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid handle or secret")
		}
		return nil, "", time.Time{}, apperrors.NewPersistenceFailure(err)
	}

	if err := auth.ComparePassword(account.PasswordHash, secret); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid handle or secret")
	}

	token, exp, err := s.tokenMgr.Issue(account.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for the gateway.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, accountID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}
