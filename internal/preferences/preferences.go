package preferences

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/memoria/internal/api"
	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/storage"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// Themes lists the image themes the client knows how to fetch.
var Themes = []string{"harrypotter", "pokemon", "cats", "starwars"}

// Preferences is the player's theme and card colors.
type Preferences struct {
	API         string `json:"api" yaml:"api" validate:"required,oneof=harrypotter pokemon cats starwars"`
	ColorFound  string `json:"color_found" yaml:"color_found" validate:"required,hexcolor"`
	ColorClosed string `json:"color_closed" yaml:"color_closed" validate:"required,hexcolor"`
}

// Defaults are used when the player is not logged in or loading fails.
func Defaults() Preferences {
	return Preferences{
		API:         "harrypotter",
		ColorFound:  "#00d4ff",
		ColorClosed: "#2a2d47",
	}
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// Validate checks theme and color formats.
func (p Preferences) Validate() error {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	if err := validateInst.Struct(p); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			fe := ves[0]
			return memerrors.NewValidationError(jsonFieldName(fe.Field()), fmt.Sprintf("failed validation for tag '%s'", fe.Tag()), err)
		}
		return memerrors.NewValidationError("preferences", err.Error(), err)
	}
	return nil
}

func jsonFieldName(field string) string {
	switch field {
	case "API":
		return "api"
	case "ColorFound":
		return "color_found"
	case "ColorClosed":
		return "color_closed"
	default:
		return field
	}
}

// Store loads and saves preferences against the API and mirrors them locally.
type Store struct {
	client *api.Client
	local  *storage.Store
	log    *logger.Logger
}

// NewStore creates a preferences Store.
func NewStore(client *api.Client, local *storage.Store, log *logger.Logger) *Store {
	return &Store{client: client, local: local, log: log}
}

// Get fetches the player's preferences. It never fails: without a session,
// on 404, and on any error it falls back to Defaults. A 401 still ends the
// session through the API client.
func (s *Store) Get(ctx context.Context) Preferences {
	if !s.client.HasToken() {
		return Defaults()
	}

	resp, err := s.client.Do(ctx, api.Request{Path: api.PathPreferences})
	if err != nil {
		s.log.Error(ctx, "error loading preferences", "error", err)
		return Defaults()
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var prefs Preferences
		if err := api.DecodeJSON(resp, &prefs); err != nil {
			s.log.Error(ctx, "error decoding preferences", "error", err)
			return Defaults()
		}
		if err := s.local.SetJSON(storage.KeyCurrentPrefs, prefs); err != nil {
			s.log.Warn(ctx, "failed to cache preferences", "error", err)
		}
		return prefs
	case http.StatusNotFound:
		api.Close(resp)
		return Defaults()
	default:
		api.Close(resp)
		s.log.Error(ctx, "failed to load preferences", "status", resp.StatusCode)
		return Defaults()
	}
}

// Save stores prefs remotely. It reports false without a session or when the
// server does not confirm with 204; a 500 is returned as an error.
func (s *Store) Save(ctx context.Context, prefs Preferences) (bool, error) {
	if !s.client.HasToken() {
		return false, nil
	}
	if err := prefs.Validate(); err != nil {
		return false, err
	}

	resp, err := s.client.Do(ctx, api.Request{Method: http.MethodPost, Path: api.PathPreferences, Body: prefs})
	if err != nil {
		s.log.Error(ctx, "error saving preferences", "error", err)
		return false, err
	}
	defer api.Close(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		if err := s.local.SetJSON(storage.KeyCurrentPrefs, prefs); err != nil {
			s.log.Warn(ctx, "failed to cache preferences", "error", err)
		}
		s.log.Info(ctx, "preferences saved", "api", prefs.API)
		return true, nil
	case http.StatusInternalServerError:
		return false, memerrors.NewAPIError("save preferences", resp.StatusCode, "Failed to save preferences")
	default:
		return false, nil
	}
}

// Current returns the last known preferences without a network call.
func (s *Store) Current() Preferences {
	var prefs Preferences
	found, err := s.local.GetJSON(storage.KeyCurrentPrefs, &prefs)
	if !found || err != nil {
		return Defaults()
	}
	return prefs
}

// Remember stores prefs locally, as when another view reports an update.
func (s *Store) Remember(prefs Preferences) error {
	return s.local.SetJSON(storage.KeyCurrentPrefs, prefs)
}

// Email fetches the player's email address; 404 yields "".
func (s *Store) Email(ctx context.Context) (string, error) {
	resp, err := s.client.Do(ctx, api.Request{Path: api.PathEmail})
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Email string `json:"email"`
		}
		if err := api.DecodeJSON(resp, &body); err != nil {
			return "", err
		}
		return body.Email, nil
	case http.StatusNotFound:
		api.Close(resp)
		return "", nil
	default:
		api.Close(resp)
		return "", memerrors.NewAPIError("load email", resp.StatusCode, "Failed to load email")
	}
}

// UpdateEmail changes the player's email address.
func (s *Store) UpdateEmail(ctx context.Context, email string) error {
	resp, err := s.client.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   api.PathEmail,
		Body:   map[string]string{"email": email},
	})
	if err != nil {
		return err
	}
	defer api.Close(resp)

	if resp.StatusCode == http.StatusInternalServerError {
		return memerrors.NewAPIError("update email", resp.StatusCode, "Failed to update email")
	}
	return nil
}
