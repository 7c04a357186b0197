// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// noEnvFile points ParseFlags at a file that does not exist so a stray
// .env in the package directory cannot leak into tests
func noEnvFile(t *testing.T) string {
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_1")
	t.Setenv("ADMIN_EMAILS", "root@example.com,ops@example.com")
	t.Setenv("CACHE_TTL", "5s")

	cfg, err := ParseFlags([]string{noEnvFile(t)})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if len(cfg.AdminEmails) != 2 || cfg.AdminEmails[1] != "ops@example.com" {
		t.Errorf("unexpected admin emails %v", cfg.AdminEmails)
	}
	if cfg.CacheTTL != 5*time.Second {
		t.Errorf("expected 5s cache ttl, got %s", cfg.CacheTTL)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PAYMENT_MODE", "")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk_test_1")

	cfg, err := ParseFlags([]string{noEnvFile(t)})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "voteup.db" {
		t.Errorf("expected sqlite voteup.db, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Errorf("expected 48h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.PaymentMode != PaymentPaystack {
		t.Errorf("expected paystack payments by default, got %s", cfg.PaymentMode)
	}
	if cfg.IPHashSalt != "test-secret" {
		t.Errorf("expected ip salt to fall back to the jwt secret, got %q", cfg.IPHashSalt)
	}
	if cfg.ReconcileInterval != time.Minute {
		t.Errorf("expected 1m reconcile interval, got %s", cfg.ReconcileInterval)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PAYSTACK_SECRET_KEY", "")

	cfg, err := ParseFlags([]string{noEnvFile(t), "-p", "8080", "-d", "file:test.db", "-jwt-secret", "from-cli", "-t", "memory", "-payment", "fake"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "from-cli" {
		t.Errorf("CLI should override env: expected from-cli, got %s", cfg.JWTSecret)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected memory, got %s", cfg.DatabaseType)
	}
	if cfg.PaymentMode != PaymentFake {
		t.Errorf("expected explicit fake payments, got %s", cfg.PaymentMode)
	}
}

func TestParseFlags_PaymentModeRequiresSecret(t *testing.T) {
	testCases := []struct {
		name    string
		mode    string
		secret  string
		want    string
		wantErr bool
	}{
		{"nothing configured", "", "", "", true},
		{"paystack without key", "paystack", "", "", true},
		{"paystack with key", "", "sk_test_1", PaymentPaystack, false},
		{"explicit fake", "fake", "", PaymentFake, false},
		{"fake ignores key", "FAKE", "sk_test_1", PaymentFake, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s")
			t.Setenv("PAYMENT_MODE", tc.mode)
			t.Setenv("PAYSTACK_SECRET_KEY", tc.secret)

			cfg, err := ParseFlags([]string{noEnvFile(t)})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected startup to fail, got payment mode %q", cfg.PaymentMode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg.PaymentMode != tc.want {
				t.Errorf("expected %s, got %s", tc.want, cfg.PaymentMode)
			}
		})
	}
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "JWT_SECRET=dotenv-secret\nPAYSTACK_SECRET_KEY=sk_test_1\nPORT=7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// already-set variables win over the file
	t.Setenv("PORT", "7100")
	// godotenv sets variables directly; register them for cleanup
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("PAYSTACK_SECRET_KEY", "")
	os.Unsetenv("PAYSTACK_SECRET_KEY")

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.JWTSecret != "dotenv-secret" {
		t.Errorf("expected secret from file, got %q", cfg.JWTSecret)
	}
	if cfg.Port != 7100 {
		t.Errorf("expected env PORT to win over file, got %d", cfg.Port)
	}
	if cfg.PaymentMode != PaymentPaystack {
		t.Errorf("expected paystack mode when a secret key is present, got %s", cfg.PaymentMode)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}, nil},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "DATABASE_TYPE": "postgres", "DATABASE_URL": ""}, nil},
		{"unknown database", map[string]string{"JWT_SECRET": "s", "DATABASE_TYPE": "mysql"}, nil},
		{"no payment config", map[string]string{"JWT_SECRET": "s", "PAYMENT_MODE": "", "PAYSTACK_SECRET_KEY": ""}, nil},
		{"unknown payment mode", map[string]string{"JWT_SECRET": "s", "PAYMENT_MODE": "stripe"}, nil},
		{"bad port env", map[string]string{"JWT_SECRET": "s", "PORT": "abc"}, nil},
		{"bad duration", map[string]string{"JWT_SECRET": "s", "CACHE_TTL": "soon"}, nil},
		{"unknown flag", map[string]string{"JWT_SECRET": "s"}, []string{"-nope"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			args := append([]string{noEnvFile(t)}, tc.args...)
			if _, err := ParseFlags(args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
