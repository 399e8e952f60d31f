package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "KUHA"

	AppEnvDev = "dev"

	PrefsDriverSQLite   = "sqlite"
	PrefsDriverPostgres = "postgres"
	PrefsDriverRedis    = "redis"
)

// Env var names referenced outside envconfig tags (tests, docs).
const (
	EnvAppEnv        = "KUHA_APP_ENV"
	EnvPort          = "KUHA_APP_PORT"
	EnvPrefsDriver   = "KUHA_PREFS_DRIVER"
	EnvDBDSN         = "KUHA_DB_DSN"
	EnvRedisURL      = "KUHA_REDIS_URL"
	EnvJWTSecret     = "KUHA_JWT_SECRET"
	EnvJWTIssuer     = "KUHA_JWT_ISSUER"
	EnvJWTExpMins    = "KUHA_JWT_EXPIRATION_MINUTES"
	EnvStorefrontURL = "KUHA_STOREFRONT_BASE_URL"
	EnvFoundationURL = "KUHA_FOUNDATION_BASE_URL"
)

type Config struct {
	App           AppConfig
	Storefront    StorefrontConfig
	Foundation    FoundationConfig
	Prefs         PrefsConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Media         MediaConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Prefs.validate(cfg.DB, cfg.Redis); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"KUHA_APP_ENV" required:"true"`
	Port         string   `envconfig:"KUHA_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"KUHA_LOG_LEVEL" default:"info"`
	LogFormat    string   `envconfig:"KUHA_LOG_FORMAT"`
	LogWarnStack bool     `envconfig:"KUHA_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"KUHA_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// ResolvedLogFormat returns KUHA_LOG_FORMAT when set, otherwise console
// output in dev and JSON everywhere else.
func (a AppConfig) ResolvedLogFormat() string {
	if format := strings.TrimSpace(a.LogFormat); format != "" {
		return format
	}
	if a.IsDev() {
		return "console"
	}
	return "json"
}

// StorefrontConfig points at the Kuha Bites REST backend.
type StorefrontConfig struct {
	BaseURL         string        `envconfig:"KUHA_STOREFRONT_BASE_URL" default:"https://kuha.pythonanywhere.com"`
	Timeout         time.Duration `envconfig:"KUHA_STOREFRONT_TIMEOUT" default:"0s"`
	WhatsAppPhone   string        `envconfig:"KUHA_WHATSAPP_PHONE" default:"254791777572"`
	WhatsAppMessage string        `envconfig:"KUHA_WHATSAPP_MESSAGE" default:"Hello Kuha Bites 👋, I'd like to place an order."`
}

// FoundationConfig points at the Imarika Foundation REST backends.
type FoundationConfig struct {
	BaseURL       string        `envconfig:"KUHA_FOUNDATION_BASE_URL" default:"https://imarikafoundation.pythonanywhere.com"`
	SubmitBaseURL string        `envconfig:"KUHA_FOUNDATION_SUBMIT_BASE_URL" default:"https://imarikafoundation.org/api/api"`
	Timeout       time.Duration `envconfig:"KUHA_FOUNDATION_TIMEOUT" default:"0s"`
}

type PrefsConfig struct {
	Driver string `envconfig:"KUHA_PREFS_DRIVER" default:"sqlite"`
}

func (p PrefsConfig) validate(db DBConfig, redis RedisConfig) error {
	switch strings.ToLower(strings.TrimSpace(p.Driver)) {
	case PrefsDriverSQLite, PrefsDriverPostgres:
		if strings.TrimSpace(db.DSN) == "" {
			return fmt.Errorf("%s is required for prefs driver %q", EnvDBDSN, p.Driver)
		}
	case PrefsDriverRedis:
		if strings.TrimSpace(redis.URL) == "" && strings.TrimSpace(redis.Address) == "" {
			return fmt.Errorf("%s is required for prefs driver %q", EnvRedisURL, p.Driver)
		}
	default:
		return fmt.Errorf("unsupported prefs driver %q", p.Driver)
	}
	return nil
}

// NormalizedDriver returns the lower-cased prefs driver name.
func (p PrefsConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(p.Driver))
}

type DBConfig struct {
	DSN             string        `envconfig:"KUHA_DB_DSN" default:"file:kuha-prefs.db?cache=shared"`
	MaxOpenConns    int           `envconfig:"KUHA_DB_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int           `envconfig:"KUHA_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"KUHA_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KUHA_REDIS_URL"`
	Address      string        `envconfig:"KUHA_REDIS_ADDR"`
	Password     string        `envconfig:"KUHA_REDIS_PASSWORD"`
	DB           int           `envconfig:"KUHA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KUHA_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"KUHA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KUHA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KUHA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"KUHA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"KUHA_JWT_ISSUER" default:"kuha-web"`
	ExpirationMinutes int    `envconfig:"KUHA_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TTL is the lifetime of minted session tokens.
func (j JWTConfig) TTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"KUHA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"KUHA_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"KUHA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"KUHA_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured cap to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(m.MaxUploadMB) << 20
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KUHA_AUTO_MIGRATE" default:"true"`
}
