package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/pkg/util"
)

// SessionService relays session operations to the upstream API. Its
// contract toward handlers mirrors the UI contract: CurrentUser returns
// a user or nil, never an auth error.
type SessionService struct {
	api    AuthAPI
	logger *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(api AuthAPI, logger *zap.Logger) *SessionService {
	return &SessionService{api: api, logger: logger}
}

// CurrentUser resolves the session token to a user. An empty token or an
// upstream auth rejection yields (nil, nil); other upstream failures are
// returned as errors.
func (s *SessionService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil
	}
	user, err := s.api.Me(ctx, token)
	if err != nil {
		if util.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Logout invalidates the session upstream. Failures are logged, not
// surfaced: the cookie is cleared locally either way.
func (s *SessionService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.api.Logout(ctx, token); err != nil {
		s.logger.Warn("upstream logout failed", zap.Error(err))
	}
}
