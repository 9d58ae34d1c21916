package secrets

import (
	"context"
	"os"
	"strings"

	"represent/pkg/platform/sentinel"
)

// EnvSource reads secrets from environment variables. A parameter path such
// as /represent-app/openstates-api-key maps to REPRESENT_APP_OPENSTATES_API_KEY.
type EnvSource struct {
	lookup func(string) (string, bool)
}

// NewEnvSource returns a Source backed by the process environment.
func NewEnvSource() *EnvSource {
	return &EnvSource{lookup: os.LookupEnv}
}

// Get implements Source.
func (s *EnvSource) Get(_ context.Context, name string) (string, error) {
	v, ok := s.lookup(EnvName(name))
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return v, nil
}

// EnvName converts a parameter path into an environment variable name.
func EnvName(name string) string {
	name = strings.Trim(name, "/")
	return strings.ToUpper(strings.NewReplacer("/", "_", "-", "_", ".", "_").Replace(name))
}
