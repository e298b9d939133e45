package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/annotator/internal/models"
	"github.com/killallgit/annotator/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
		opts   []Option
	}{
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "empty path is in-memory", dbPath: ""},
		{
			name:   "file database with WAL",
			dbPath: filepath.Join(t.TempDir(), "nested", "test.db"),
			opts:   []Option{WithWAL(true), WithPool(4, 2, time.Minute)},
		},
		{
			name:   "file database without foreign keys",
			dbPath: filepath.Join(t.TempDir(), "plain.db"),
			opts:   []Option{WithForeignKeys(false), WithQueryLogging(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, tt.opts...)
			require.NoError(t, err)
			require.NotNil(t, conn)
			defer conn.Close()

			assert.NoError(t, conn.HealthCheck())
		})
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", dsn(":memory:", true, options{foreignKeys: true, wal: true}))
	assert.Equal(t, "a.db?_foreign_keys=on&_journal_mode=WAL", dsn("a.db", false, options{foreignKeys: true, wal: true}))
	assert.Equal(t, "a.db", dsn("a.db", false, options{}))
}

func TestDB_HealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		setupConn func(t *testing.T) *DB
		wantErr   bool
	}{
		{
			name: "healthy connection",
			setupConn: func(t *testing.T) *DB {
				conn, err := Initialize(":memory:")
				require.NoError(t, err)
				t.Cleanup(func() { conn.Close() })
				return conn
			},
		},
		{
			name: "closed connection",
			setupConn: func(t *testing.T) *DB {
				conn, err := Initialize(":memory:")
				require.NoError(t, err)
				require.NoError(t, conn.Close())
				return conn
			},
			wantErr: true,
		},
		{
			name: "nil connection",
			setupConn: func(t *testing.T) *DB {
				return nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setupConn(t).HealthCheck()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_AutoMigrateCatalog(t *testing.T) {
	conn, err := Initialize(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.AutoMigrate(models.CatalogModels()...))

	for _, table := range []string{"projects", "data", "segmentations", "labels", "label_values", "annotations"} {
		var count int64
		err := conn.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "table %s", table)
	}
}

func TestDB_MemoryDatabaseIsShared(t *testing.T) {
	type Note struct {
		gorm.Model
		Body string
	}

	conn, err := Initialize(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.AutoMigrate(&Note{}))

	err = conn.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&Note{Body: "kept"}).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, conn.DB.Model(&Note{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDB_TransactionRollback(t *testing.T) {
	type Note struct {
		gorm.Model
		Body string
	}

	conn, err := Initialize(":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.AutoMigrate(&Note{}))

	err = conn.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&Note{Body: "rolled back"}).Error; err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	assert.Error(t, err)

	var count int64
	conn.DB.Model(&Note{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInitializeWithMigrations(t *testing.T) {
	t.Run("migrates a file database", func(t *testing.T) {
		conn, err := InitializeWithMigrations(config.DatabaseConfig{
			Path:              filepath.Join(t.TempDir(), "annotator.db"),
			EnableWAL:         true,
			EnableForeignKeys: true,
		}, nil)
		require.NoError(t, err)
		defer conn.Close()

		assert.True(t, conn.Migrator().HasTable(&models.DataRecord{}))
		assert.True(t, conn.Migrator().HasTable(&models.LabelRecord{}))
	})

	t.Run("requires a path", func(t *testing.T) {
		_, err := InitializeWithMigrations(config.DatabaseConfig{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database path is not configured")
	})
}
