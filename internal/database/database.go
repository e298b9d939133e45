package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/pkg/config"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	log *zap.Logger
}

type options struct {
	verbose      bool
	wal          bool
	foreignKeys  bool
	maxOpen      int
	maxIdle      int
	connLifetime time.Duration
	logger       *zap.Logger
}

// Option configures Initialize
type Option func(*options)

// WithQueryLogging makes gorm log every statement
func WithQueryLogging(enabled bool) Option {
	return func(o *options) { o.verbose = enabled }
}

// WithWAL enables sqlite write-ahead logging for file databases
func WithWAL(enabled bool) Option {
	return func(o *options) { o.wal = enabled }
}

// WithForeignKeys enables sqlite foreign key enforcement
func WithForeignKeys(enabled bool) Option {
	return func(o *options) { o.foreignKeys = enabled }
}

// WithPool sets connection pool limits
func WithPool(maxOpen, maxIdle int, lifetime time.Duration) Option {
	return func(o *options) {
		o.maxOpen = maxOpen
		o.maxIdle = maxIdle
		o.connLifetime = lifetime
	}
}

// WithLogger sets the logger used for migration messages
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Initialize creates a new database connection. An empty path or ":memory:"
// opens a private in-memory database.
func Initialize(dbPath string, opts ...Option) (*DB, error) {
	o := options{
		foreignKeys:  true,
		maxOpen:      100,
		maxIdle:      10,
		connLifetime: time.Hour,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	memory := dbPath == "" || dbPath == ":memory:"
	if memory {
		dbPath = ":memory:"
	} else {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	logLevel := logger.Error
	if o.verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath, memory, o)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every new connection to :memory: is a fresh database
	if memory {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(o.maxIdle)
		sqlDB.SetMaxOpenConns(o.maxOpen)
		sqlDB.SetConnMaxLifetime(o.connLifetime)
	}

	return &DB{DB: db, log: o.logger}, nil
}

func dsn(path string, memory bool, o options) string {
	var params []string
	if o.foreignKeys {
		params = append(params, "_foreign_keys=on")
	}
	if o.wal && !memory {
		params = append(params, "_journal_mode=WAL")
	}
	if len(params) == 0 {
		return path
	}
	return path + "?" + strings.Join(params, "&")
}

// InitializeWithMigrations opens the configured database and migrates the
// catalog schema
func InitializeWithMigrations(cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is not configured")
	}

	db, err := Initialize(cfg.Path,
		WithQueryLogging(cfg.LogQueries),
		WithWAL(cfg.EnableWAL),
		WithForeignKeys(cfg.EnableForeignKeys),
		WithPool(orDefault(cfg.MaxConnections, 100), orDefault(cfg.MaxIdleConnections, 10), cfg.ConnectionMaxLifetime),
		WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.CatalogModels()...); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	if db.log != nil {
		db.log.Info("database migrated", zap.Int("models", len(models)))
	}
	return nil
}
