// Package services combines remote operations with local persistence: the
// auth service keeps the session store in step with the backend, the
// favorites service maintains an offline snapshot of the user's favorites.
package services

import (
	"context"

	"github.com/elliot09alderson/estate-client/internal/client/api"
	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/logging"
)

// AuthAPI is the slice of the operation catalog the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (api.Credentials, error)
	Register(ctx context.Context, in api.RegisterInput) (api.Credentials, error)
}

// SessionStore persists the signed-in identity locally.
type SessionStore interface {
	Save(ctx context.Context, token string, user *models.User) error
	CurrentUser(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// AuthService signs users in and out, keeping the local session in step with
// the backend.
type AuthService struct {
	api     AuthAPI
	session SessionStore
	log     logging.Logger
}

func NewAuthService(a AuthAPI, s SessionStore, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AuthService{api: a, session: s, log: log}
}

// Login authenticates and persists the token and user profile locally. The
// session is only written after the backend accepts the credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	creds, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.session.Save(ctx, creds.Token, &creds.User); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "signed in", "user", creds.User.ID, "role", creds.User.Role)
	return &creds.User, nil
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, in api.RegisterInput) (*models.User, error) {
	creds, err := s.api.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.session.Save(ctx, creds.Token, &creds.User); err != nil {
		return nil, err
	}
	return &creds.User, nil
}

// Logout drops the local session. The backend holds no server-side session
// state, so nothing remote is called.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser returns the locally persisted profile of the signed-in user.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.session.CurrentUser(ctx)
}
