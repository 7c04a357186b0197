// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Payment modes
const (
	PaymentPaystack = "paystack"
	PaymentFake     = "fake"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"48h"`
	IPHashSalt  string        `env:"IP_HASH_SALT"`
	AdminEmails []string      `env:"ADMIN_EMAILS" envSeparator:","`

	PaymentMode       string `env:"PAYMENT_MODE" envDefault:"paystack"`
	PaystackSecretKey string `env:"PAYSTACK_SECRET_KEY"`
	PaystackPublicKey string `env:"PAYSTACK_PUBLIC_KEY"`
	PaystackBaseURL   string `env:"PAYSTACK_BASE_URL" envDefault:"https://api.paystack.co"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"1m"`
}

// ParseFlags builds the Config from, in increasing precedence, a .env file,
// the process environment, and command-line flags
func ParseFlags(args []string) (Config, error) {
	fset := flag.NewFlagSet("voteup", flag.ContinueOnError)

	envFile := fset.String("env-file", ".env", "Dotenv file to load (missing file is ignored)")
	port := fset.Int("p", 0, "Server port")
	dbURL := fset.String("d", "", "Database URL")
	dbType := fset.String("t", "", "Database type (sqlite, postgres or memory)")
	jwtSecret := fset.String("jwt-secret", "", "JWT signing secret (prefer env)")
	paymentMode := fset.String("payment", "", "Payment mode (paystack or fake)")
	redisAddr := fset.String("redis", "", "Redis address for the leaderboard cache")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// godotenv.Load never overrides variables that are already set
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", *envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "d":
			cfg.DatabaseURL = *dbURL
		case "t":
			cfg.DatabaseType = *dbType
		case "jwt-secret":
			cfg.JWTSecret = *jwtSecret
		case "payment":
			cfg.PaymentMode = *paymentMode
		case "redis":
			cfg.RedisAddr = *redisAddr
		}
	})

	if err := cfg.finish(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// finish fills derived defaults and rejects unusable combinations
func (c *Config) finish() error {
	c.DatabaseType = strings.ToLower(strings.TrimSpace(c.DatabaseType))
	switch c.DatabaseType {
	case "sqlite":
		if c.DatabaseURL == "" {
			c.DatabaseURL = "voteup.db"
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database type %q", c.DatabaseType)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}
	if c.IPHashSalt == "" {
		c.IPHashSalt = c.JWTSecret
	}

	// fake payments credit every purchase, so they are never a fallback
	c.PaymentMode = strings.ToLower(strings.TrimSpace(c.PaymentMode))
	if c.PaymentMode == "" {
		c.PaymentMode = PaymentPaystack
	}
	switch c.PaymentMode {
	case PaymentPaystack:
		if c.PaystackSecretKey == "" {
			return errors.New("PAYSTACK_SECRET_KEY required (set PAYMENT_MODE=fake for local development)")
		}
	case PaymentFake:
	default:
		return fmt.Errorf("unknown payment mode %q", c.PaymentMode)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ReconcileInterval < 0 {
		return errors.New("RECONCILE_INTERVAL cannot be negative")
	}
	return nil
}
