package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Events    EventsConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	Timezone      string
	InternalToken string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type EventsConfig struct {
	QueueSize int
}

type RateLimitConfig struct {
	EvaluatePerMinute int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the process environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := parseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string) bool {
		v, err := strconv.ParseBool(opt(key))
		return err == nil && v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		Timezone:      opt("APP_TIMEZONE"),
		InternalToken: opt("INTERNAL_TOKEN"),
	}

	cfg.Log = LogConfig{
		Level:  optDefault("LOG_LEVEL", "info"),
		Format: optDefault("LOG_FORMAT", "json"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),

		RunMigrations: optBool("DB_RUN_MIGRATIONS"),
		RunSeeders:    optBool("DB_RUN_SEEDERS"),
		MigrationsDir: optDefault("DB_MIGRATIONS_DIR", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Events = EventsConfig{
		QueueSize: optInt("EVENT_QUEUE_SIZE", 256),
	}

	cfg.RateLimit = RateLimitConfig{
		EvaluatePerMinute: optInt("EVALUATE_RATE_PER_MINUTE", 30),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Location resolves APP_TIMEZONE. Empty means the server-local zone.
func (c AppConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// parseDuration accepts Go duration strings ("15m") and bare seconds ("900").
func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("negative duration: %s", raw)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration: %s", raw)
	}
	return d, nil
}
