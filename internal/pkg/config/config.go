package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=http://localhost:3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Notify NotifyConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET, required"`
	TokenLifetime      time.Duration `env:"TOKEN_LIFETIME,       default=24h"`
	BcryptCost         int           `env:"BCRYPT_COST,          default=10"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`
}

type MongoConfig struct {
	URI         string        `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string        `env:"MONGO_DB,            default=feedback_system"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=100"`
}

// RedisConfig backs the login throttle. An empty address disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// NotifyConfig controls feedback event delivery. Without an AMQP URL events
// are written to the log.
type NotifyConfig struct {
	AMQPURL string `env:"AMQP_URL"`
	Queue   string `env:"AMQP_QUEUE,     default=feedback.events"`
	Workers int    `env:"NOTIFY_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.TokenLifetime <= 0 {
		errs = append(errs, errors.New("TOKEN_LIFETIME must be positive"))
	}
	if c.Notify.Workers < 0 {
		errs = append(errs, errors.New("NOTIFY_WORKERS must not be negative"))
	}
	if len(c.CORSOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ORIGINS must name at least one origin"))
	}
	return errors.Join(errs...)
}
