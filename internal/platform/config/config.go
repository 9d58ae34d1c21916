package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "represent/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// LookupTimeout bounds one whole lookup: resolve plus fan-out.
	LookupTimeout time.Duration
	// ProviderTimeout bounds a single outbound provider call.
	ProviderTimeout time.Duration

	Providers   ProvidersConfig
	Secrets     SecretsConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	CORSOrigins []string
}

// ProvidersConfig holds the base URLs of the two upstream providers.
type ProvidersConfig struct {
	CivicBaseURL      string
	OpenStatesBaseURL string
}

// SecretsConfig selects where provider credentials come from.
type SecretsConfig struct {
	Backend               string // env | ssm
	AWSRegion             string
	CivicAPIKeyParam      string
	OpenStatesAPIKeyParam string
}

// RedisConfig configures the optional redis connection used for throttling.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig configures inbound per-client throttling.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// Secret backends.
const (
	SecretsBackendEnv = "env"
	SecretsBackendSSM = "ssm"
)

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	r := &reader{}
	cfg := Server{
		Addr:            r.str("REPRESENT_ADDR", ":8080"),
		LogLevel:        r.str("LOG_LEVEL", "info"),
		LogFormat:       r.str("LOG_FORMAT", "json"),
		LookupTimeout:   r.duration("LOOKUP_TIMEOUT", 15*time.Second),
		ProviderTimeout: r.duration("PROVIDER_TIMEOUT", 10*time.Second),
		Providers: ProvidersConfig{
			CivicBaseURL:      strings.TrimRight(r.str("CIVIC_BASE_URL", "https://www.googleapis.com/civicinfo/v2"), "/"),
			OpenStatesBaseURL: strings.TrimRight(r.str("OPENSTATES_BASE_URL", "https://v3.openstates.org"), "/"),
		},
		Secrets: SecretsConfig{
			Backend:               strings.ToLower(r.str("SECRETS_BACKEND", SecretsBackendEnv)),
			AWSRegion:             r.str("AWS_REGION", ""),
			CivicAPIKeyParam:      r.str("CIVIC_API_KEY_PARAM", "/represent-app/google-civic-api-key"),
			OpenStatesAPIKeyParam: r.str("OPENSTATES_API_KEY_PARAM", "/represent-app/openstates-api-key"),
		},
		Redis: RedisConfig{
			URL:          r.str("REDIS_URL", ""),
			PoolSize:     r.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:  r.boolean("RATE_LIMIT_ENABLED", true),
			Requests: r.integer("RATE_LIMIT_REQUESTS", 60),
			Window:   r.duration("RATE_LIMIT_WINDOW", time.Minute),
		},
		CORSOrigins: pstrings.SplitList(r.str("CORS_ALLOWED_ORIGINS", "*")),
	}
	if r.err != nil {
		return Server{}, r.err
	}
	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	switch c.Secrets.Backend {
	case SecretsBackendEnv, SecretsBackendSSM:
	default:
		return fmt.Errorf("SECRETS_BACKEND must be %q or %q, got %q", SecretsBackendEnv, SecretsBackendSSM, c.Secrets.Backend)
	}
	if c.LookupTimeout <= 0 || c.ProviderTimeout <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT and PROVIDER_TIMEOUT must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// reader records the first parse failure so FromEnv can report it once.
type reader struct {
	err error
}

func (r *reader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return d
}

func (r *reader) integer(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(fmt.Errorf("invalid %s %q: %w", key, v, err))
		return def
	}
	return b
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
