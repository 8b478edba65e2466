package db

import (
	"strings"
	"testing"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	cfg := Config{
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable TimeZone=UTC"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg := LoadConfigFromEnv()

	if cfg.Host != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.Host)
	}
	if cfg.Port != "5432" {
		t.Errorf("expected default port 5432, got %q", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("expected default sslmode disable, got %q", cfg.SSLMode)
	}
}

func TestLoadConfigFromEnv_Explicit(t *testing.T) {
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "market")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_SSLMODE", "require")

	dsn := BuildDSN(LoadConfigFromEnv())

	for _, want := range []string{"host=db.internal", "port=6432", "user=svc", "dbname=market", "sslmode=require"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("expected DSN to contain %q, got %q", want, dsn)
		}
	}
}
