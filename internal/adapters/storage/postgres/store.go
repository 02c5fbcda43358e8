// Package postgres persists premium rates and quote history in PostgreSQL
// via GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/prmf/premium-api/internal/domain"
)

// Config holds connection settings for the PostgreSQL store.
type Config struct {
	// DSN is the full PostgreSQL connection string.
	DSN string

	// MaxOpenConns caps the connection pool size.
	MaxOpenConns int

	// MaxIdleConns caps idle connections kept in the pool.
	MaxIdleConns int

	// ConnMaxLifetime bounds how long a pooled connection may be reused.
	ConnMaxLifetime time.Duration
}

// Store implements the rate and history ports on a PostgreSQL database.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to PostgreSQL, configures the pool, and verifies the
// connection with a ping.
func Open(cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres connection established",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
	)

	return &Store{db: db, logger: logger}, nil
}

// Migrate creates or updates the premium_rates and quote_history tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&premiumRate{}, &quoteHistory{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}

	return sqlDB.Close()
}

// Find returns the rate row for the exact (age, familySize) key.
func (s *Store) Find(ctx context.Context, age int, familySize domain.FamilySize) (*domain.RateRecord, error) {
	var row premiumRate
	err := s.db.WithContext(ctx).
		Where("age = ? AND family_size = ?", age, string(familySize)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewRateNotFoundError(age, familySize)
		}

		return nil, domain.NewStoreError("find rate", err)
	}

	return row.toDomain(), nil
}

// Append inserts one history row. The record ID is assigned here when
// the caller did not set one.
func (s *Store) Append(ctx context.Context, record *domain.HistoryRecord) error {
	row := fromDomainHistory(record)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.NewStoreError("append history", err)
	}

	return nil
}

// ListByOwner returns the owner's saved quotes, newest first, capped at limit.
func (s *Store) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.HistoryRecord, error) {
	var rows []quoteHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewStoreError("list history", err)
	}

	records := make([]domain.HistoryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}

	return records, nil
}

// ReplaceAll swaps the rate table contents in a single transaction so
// readers never observe a partially loaded table.
func (s *Store) ReplaceAll(ctx context.Context, rates []domain.RateRecord) error {
	rows := make([]premiumRate, 0, len(rates))
	for _, r := range rates {
		rows = append(rows, fromDomainRate(r))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&premiumRate{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return domain.NewStoreError("replace rates", err)
	}

	s.logger.Info("rate table replaced", slog.Int("rows", len(rows)))

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "postgres" }

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	return nil
}
