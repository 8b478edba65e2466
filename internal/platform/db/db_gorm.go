// Package db opens the PostgreSQL connection and runs schema migrations.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	analysisentity "thaivest_backend/internal/feature/analysis/domain/entity"
	etfentity "thaivest_backend/internal/feature/etfs/domain/entity"
	indexentity "thaivest_backend/internal/feature/indices/domain/entity"
	quotesadapters "thaivest_backend/internal/feature/quotes/adapters"
	quotesentity "thaivest_backend/internal/feature/quotes/domain/entity"
	stockentity "thaivest_backend/internal/feature/stocks/domain/entity"
	syncentity "thaivest_backend/internal/feature/sync/domain/entity"
)

// Config holds the database connection parameters.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfigFromEnv reads connection parameters from the environment.
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN renders the PostgreSQL connection string.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ConnectWithRetry keeps dialing until the database answers or the deadline
// passes. Container orchestration starts the database alongside the app, so
// the first attempts routinely fail.
func ConnectWithRetry(dsn string, timeout time.Duration) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", timeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects using environment configuration and optionally migrates
// the schema when RUN_MIGRATIONS=true.
func OpenDB() (*gorm.DB, error) {
	cfg := LoadConfigFromEnv()
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second)
	if err != nil {
		return nil, err
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates every table the application owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&stockentity.Stock{},
		&etfentity.ETF{},
		&etfentity.ETFHolding{},
		&indexentity.Index{},
		&indexentity.IndexComponent{},
		&quotesentity.LatestQuote{},
		&quotesadapters.StockPrice{},
		&quotesadapters.ETFPrice{},
		&analysisentity.Analysis{},
		&syncentity.SyncLog{},
		&syncentity.SyncLease{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
