package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the marketplace API.
type Config struct {
	Env     string
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	RabbitMQURL string
	RedisURL    string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	ClientURL string

	// OrdersListRequiresAdmin puts GET /api/orders behind the admin role.
	OrdersListRequiresAdmin bool
	// OrdersStatusBySeller hands order status updates to the sellers of the ordered items.
	OrdersStatusBySeller bool
}

const devJWTSecret = "dev_jwt_secret_change_me"

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return FromViper(viper.New())
}

// FromViper applies defaults and environment overrides to v and builds a Config.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:marketplace.db?_foreign_keys=on")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 20)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("CLIENT_URL", "http://localhost:5173")
	v.SetDefault("ORDERS_LIST_REQUIRES_ADMIN", false)
	v.SetDefault("ORDERS_STATUS_BY_SELLER", false)
	v.AutomaticEnv()

	cfg := &Config{
		Env:                     v.GetString("APP_ENV"),
		AppPort:                 v.GetString("APP_PORT"),
		DatabaseDriver:          strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:             v.GetString("DATABASE_DSN"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTTTL:                  v.GetDuration("JWT_TTL"),
		RabbitMQURL:             v.GetString("RABBITMQ_URL"),
		RedisURL:                v.GetString("REDIS_URL"),
		RateLimitRequests:       v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:         v.GetDuration("RATE_LIMIT_WINDOW"),
		ClientURL:               v.GetString("CLIENT_URL"),
		OrdersListRequiresAdmin: v.GetBool("ORDERS_LIST_REQUIRES_ADMIN"),
		OrdersStatusBySeller:    v.GetBool("ORDERS_STATUS_BY_SELLER"),
	}

	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		log.Println("JWT_SECRET not set, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if strings.Contains(c.ClientURL, "*") {
		return fmt.Errorf("CLIENT_URL must name an origin, not a wildcard, because CORS allows credentials")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// IsDevelopment reports whether the app runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
