// Package secrets loads provider credentials once at startup.
//
// Credentials are process-scoped and read-only after Load returns; nothing
// re-fetches them per request.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"represent/pkg/platform/sentinel"
)

// Source retrieves a named secret value.
type Source interface {
	Get(ctx context.Context, name string) (string, error)
}

// Credentials are the API keys for the two upstream providers.
type Credentials struct {
	CivicAPIKey      string
	OpenStatesAPIKey string
}

// Names lists the parameter names to resolve for each credential.
type Names struct {
	CivicAPIKey      string
	OpenStatesAPIKey string
}

// ErrEmptySecret is returned when a secret exists but holds only whitespace.
var ErrEmptySecret = errors.New("secret is empty")

// Load resolves every credential from src, failing on the first missing or empty value.
func Load(ctx context.Context, src Source, names Names) (Credentials, error) {
	civic, err := get(ctx, src, names.CivicAPIKey)
	if err != nil {
		return Credentials{}, err
	}
	openStates, err := get(ctx, src, names.OpenStatesAPIKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{CivicAPIKey: civic, OpenStatesAPIKey: openStates}, nil
}

func get(ctx context.Context, src Source, name string) (string, error) {
	v, err := src.Get(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", fmt.Errorf("secret %s not found: %w", name, err)
		}
		return "", fmt.Errorf("load secret %s: %w", name, err)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("secret %s: %w", name, ErrEmptySecret)
	}
	return v, nil
}
