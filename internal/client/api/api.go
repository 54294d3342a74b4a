// Package api exposes the Estate backend as typed operations. Read
// operations go through the entity cache with entity tags; write operations
// run against the transport and invalidate the tags they touch, so every
// cached read that depends on the written entities is refreshed.
package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/elliot09alderson/estate-client/internal/client/cache"
	"github.com/elliot09alderson/estate-client/internal/client/models"
	"github.com/elliot09alderson/estate-client/internal/client/transport"
	"github.com/elliot09alderson/estate-client/internal/logging"
)

// Entity tags linking cached reads to the writes that invalidate them.
const (
	TagProperty = "Property"
	TagUser     = "User"
	TagActivity = "Activity"
	TagFavorite = "Favorite"
	TagTour     = "Tour"
	TagMessage  = "Message"
	TagFeedback = "Feedback"
)

// API is the operation catalog over one transport and one cache store.
type API struct {
	rest  *transport.Client
	cache *cache.Store
	log   logging.Logger
}

// New wires the catalog to a transport and a cache store.
func New(rest *transport.Client, store *cache.Store, log logging.Logger) *API {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &API{rest: rest, cache: store, log: log}
}

// Credentials is the login result persisted into the session store.
type Credentials struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates with email and password. Not cached.
func (a *API) Login(ctx context.Context, email, password string) (Credentials, error) {
	var creds Credentials
	body := map[string]string{"email": email, "password": password}
	if err := a.rest.Post(ctx, "/auth/login", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Register creates an account and returns the same credentials a login would.
func (a *API) Register(ctx context.Context, in RegisterInput) (Credentials, error) {
	var creds Credentials
	if err := a.rest.Post(ctx, "/auth/register", in, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// raw fetches path into an undecoded payload for the page adapter.
func (a *API) raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := a.rest.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
