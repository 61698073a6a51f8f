package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Invite       InviteConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LISTPLUS_APP_ENV" required:"true"`
	Port         string `envconfig:"LISTPLUS_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"LISTPLUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LISTPLUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LISTPLUS_DB_DSN"`
	Driver string `envconfig:"LISTPLUS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LISTPLUS_DB_HOST"`
	LegacyPort     int    `envconfig:"LISTPLUS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LISTPLUS_DB_USER"`
	LegacyPassword string `envconfig:"LISTPLUS_DB_PASSWORD"`
	LegacyName     string `envconfig:"LISTPLUS_DB_NAME"`
	LegacySSLMode  string `envconfig:"LISTPLUS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LISTPLUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LISTPLUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LISTPLUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LISTPLUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LISTPLUS_REDIS_URL"`
	Address      string        `envconfig:"LISTPLUS_REDIS_ADDR"`
	Password     string        `envconfig:"LISTPLUS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LISTPLUS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LISTPLUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LISTPLUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LISTPLUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LISTPLUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LISTPLUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig describes how identity tokens from the external provider are
// verified. The backend never mints user tokens itself.
type AuthConfig struct {
	Secret string `envconfig:"LISTPLUS_AUTH_SECRET" required:"true"`
	Issuer string `envconfig:"LISTPLUS_AUTH_ISSUER" required:"true"`
}

type InviteConfig struct {
	FrontendBaseURL string `envconfig:"LISTPLUS_FRONTEND_URL" default:"http://localhost:5173"`
	MaxAttempts     int    `envconfig:"LISTPLUS_INVITE_MAX_ATTEMPTS" default:"3"`
}

// RateLimitConfig throttles the unauthenticated signup webhook.
type RateLimitConfig struct {
	StoreUserWindow   time.Duration `envconfig:"LISTPLUS_RATE_LIMIT_STORE_USER_WINDOW" default:"1m"`
	StoreUserIPLimit  int           `envconfig:"LISTPLUS_RATE_LIMIT_STORE_USER_IP_LIMIT" default:"20"`
	StoreUserUIDLimit int           `envconfig:"LISTPLUS_RATE_LIMIT_STORE_USER_UID_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LISTPLUS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
