package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

var (
	// ErrInvalidRegistration is returned for a 400 from the register endpoint.
	ErrInvalidRegistration = errors.New("invalid registration data")
	// ErrInvalidCredentials is returned for a 401 from the login endpoint.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Registration is the register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult reports a successful login. Token is empty when the server
// answered 200 without a readable token.
type LoginResult struct {
	Status int
	Token  string
}

// Service manages the player session.
type Service struct {
	client *api.Client
	log    *logger.Logger
}

// NewService creates an auth Service on top of client.
func NewService(client *api.Client, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Register creates a player account.
func (s *Service) Register(ctx context.Context, reg Registration) error {
	resp, err := s.client.Do(ctx, api.Request{
		Method:           http.MethodPost,
		Path:             api.PathRegister,
		Body:             reg,
		SkipSessionCheck: true,
	})
	if err != nil {
		s.log.Error(ctx, "registration request failed", "error", err)
		return err
	}
	defer api.Close(resp)

	switch resp.StatusCode {
	case http.StatusCreated:
		s.log.Info(ctx, "player registered", "username", reg.Username)
		return nil
	case http.StatusBadRequest:
		return ErrInvalidRegistration
	default:
		return memerrors.NewAPIError("register", resp.StatusCode, fmt.Sprintf("Registration failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
}

// Login exchanges credentials for a session token and stores it.
func (s *Service) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	resp, err := s.client.Do(ctx, api.Request{
		Method:           http.MethodPost,
		Path:             api.PathLogin,
		Body:             creds,
		SkipSessionCheck: true,
	})
	if err != nil {
		s.log.Error(ctx, "login request failed", "error", err)
		return LoginResult{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Token string `json:"token"`
		}
		if err := api.DecodeJSON(resp, &body); err != nil || body.Token == "" {
			s.log.Warn(ctx, "login succeeded without a token", "username", creds.Username)
			return LoginResult{Status: http.StatusOK}, nil
		}
		if err := s.client.SetToken(body.Token); err != nil {
			return LoginResult{}, fmt.Errorf("store session token: %w", err)
		}
		s.log.Info(ctx, "player logged in", "username", creds.Username)
		return LoginResult{Status: http.StatusOK, Token: body.Token}, nil
	case http.StatusUnauthorized:
		api.Close(resp)
		return LoginResult{}, ErrInvalidCredentials
	default:
		api.Close(resp)
		return LoginResult{}, memerrors.NewAPIError("login", resp.StatusCode, fmt.Sprintf("Login failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
}

// Logout forgets the session token.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.client.ClearToken(); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	s.log.Info(ctx, "player logged out")
	return nil
}

// IsAuthenticated reports whether a session token is stored.
func (s *Service) IsAuthenticated() bool {
	return s.client.HasToken()
}
