// Package auth wires the login endpoint to the session store.
package auth

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/eglise/parish/internal/api"
	"github.com/eglise/parish/internal/session"
)

const loginPath = "/api/accounts/login/"

// Credentials is the login request body. Only required/shape checks happen
// client-side; the server decides whether they are any good.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is what the login endpoint returns on success.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Service struct {
	client   *api.Client
	store    *session.Store
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(client *api.Client, store *session.Store, log zerolog.Logger) *Service {
	return &Service{
		client:   client,
		store:    store,
		validate: validator.New(),
		log:      log,
	}
}

// Login exchanges credentials for a token pair and persists it. A rejection
// (network or non-2xx) propagates unchanged; nothing is retried here.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	var pair TokenPair
	if err := s.client.Post(ctx, loginPath, creds, &pair); err != nil {
		s.log.Error().Err(err).Str("email", creds.Email).Msg("login failed")
		return nil, err
	}
	if pair.Access == "" {
		return nil, fmt.Errorf("login response missing access token")
	}
	if err := s.store.SetTokens(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.log.Info().Str("email", creds.Email).Msg("logged in")
	return &pair, nil
}

// Logout clears the stored tokens unconditionally.
func (s *Service) Logout() error {
	return s.store.Clear()
}

func (s *Service) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// Store exposes the underlying session store for status/claims queries.
func (s *Service) Store() *session.Store {
	return s.store
}
