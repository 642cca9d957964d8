package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/straye-as/repair-quote-api/internal/config"
	"github.com/straye-as/repair-quote-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection, retrying while the server comes up
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	var db *gorm.DB
	backoff := retry.WithMaxRetries(uint64(cfg.ConnectRetries), retry.NewExponential(cfg.ConnectRetryDelayDuration()))

	ctx := context.Background()
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		db, err = open(dsn, cfg)
		if err != nil {
			log.Warn("Database not reachable, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

func open(dsn string, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheckWithStats pings the database and returns connection pool statistics
func HealthCheckWithStats(db *gorm.DB) (*sql.DBStats, error) {
	if err := HealthCheck(db); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs automatic migrations (for development and tests only)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.QuoteRequest{},
		&domain.Estimate{},
		&domain.StatusTransition{},
		&domain.Notification{},
	)
}
