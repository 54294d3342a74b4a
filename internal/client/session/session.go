// Package session persists and exposes the authenticated session: the bearer
// token, the serialized current user, and the location consent flags. It is
// backed by the local metadata store and mirrors the key layout the web
// client keeps in browser storage.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/client/repositories/localdata"
	"github.com/elliot09alderson/estate-client/internal/common"
	"github.com/elliot09alderson/estate-client/internal/dbx"
	"github.com/elliot09alderson/estate-client/internal/logging"
)

// Store reads and writes session state. All methods honor context
// cancellation through the underlying database calls.
type Store struct {
	db   *sql.DB
	meta localdata.Repository
	log  logging.Logger

	// now is a test seam for expiry checks.
	now func() time.Time
}

// NewStore constructs a Store over the given database handle and metadata
// repository.
func NewStore(db *sql.DB, meta localdata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Store{db: db, meta: meta, log: log, now: time.Now}
}

// Save persists the bearer token and the current user, replacing any previous
// session. The legacy token key is removed so future reads resolve the
// canonical key.
func (s *Store) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localdata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.UserDataKey, data); err != nil {
			return err
		}
		return repo.Delete(ctx, common.LegacyTokenKey)
	})
}

// Token returns the stored bearer token, falling back to the legacy key for
// sessions written by older builds. Returns common.ErrLocalDataNotAvailable
// when no token is stored, and common.ErrTokenExpired when the token's exp
// claim is in the past.
func (s *Store) Token(ctx context.Context) (string, error) {
	value, err := s.meta.Get(ctx, common.TokenKey)
	if err != nil {
		return "", err
	}
	if value == nil {
		value, err = s.meta.Get(ctx, common.LegacyTokenKey)
		if err != nil {
			return "", err
		}
	}
	if value == nil {
		return "", common.ErrLocalDataNotAvailable
	}

	token := string(value)
	if s.expired(ctx, token) {
		return "", common.ErrTokenExpired
	}
	return token, nil
}

// expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job, this check only avoids sending requests
// that are guaranteed to bounce. Tokens that cannot be parsed or carry no exp
// claim are passed through.
func (s *Store) expired(ctx context.Context, token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.log.Debug(ctx, "stored token is not a parseable JWT", "err", err)
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

// CurrentUser returns the locally stored user, or
// common.ErrLocalDataNotAvailable when nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	value, err := s.meta.Get(ctx, common.UserDataKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, common.ErrLocalDataNotAvailable
	}

	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("unmarshaling user: %w", err)
	}
	return &user, nil
}

// SetLocation stores the consented geolocation.
func (s *Store) SetLocation(ctx context.Context, loc models.UserLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return s.meta.Set(ctx, common.UserLocationKey, data)
}

// Location returns the stored geolocation, or nil when none was consented.
func (s *Store) Location(ctx context.Context) (*models.UserLocation, error) {
	value, err := s.meta.Get(ctx, common.UserLocationKey)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	var loc models.UserLocation
	if err := json.Unmarshal(value, &loc); err != nil {
		return nil, fmt.Errorf("unmarshaling location: %w", err)
	}
	return &loc, nil
}

// MarkLocationPromptShown records that the location prompt was already
// presented, so the CLI does not nag on every start.
func (s *Store) MarkLocationPromptShown(ctx context.Context) error {
	return s.meta.Set(ctx, common.LocationPromptShownKey, []byte("1"))
}

// LocationPromptShown reports whether the prompt was already presented.
func (s *Store) LocationPromptShown(ctx context.Context) (bool, error) {
	value, err := s.meta.Get(ctx, common.LocationPromptShownKey)
	if err != nil {
		return false, err
	}
	return value != nil, nil
}

// Clear wipes the whole session (token, legacy token, user, location state)
// in one transaction. Used on logout and on a 401 from the backend.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := localdata.NewSQLiteRepository(tx)
		for _, key := range []string{
			common.TokenKey,
			common.LegacyTokenKey,
			common.UserDataKey,
			common.UserLocationKey,
			common.LocationPromptShownKey,
		} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
