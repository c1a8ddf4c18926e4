// Package dbtest opens databases for repository and query tests: a sqlite
// file per test for fast unit tests and a migrated Postgres container for
// integration suites.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"custody/internal/adapters/out/postgres/counterrepo"
	"custody/internal/adapters/out/postgres/intakerepo"
	"custody/internal/adapters/out/postgres/inventoryrepo"
	"custody/internal/adapters/out/postgres/migrations"

	"github.com/glebarez/sqlite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted DTO.
func Models() []any {
	return []any{
		&counterrepo.CounterDTO{},
		&intakerepo.IntakeDTO{},
		&intakerepo.VerificationDTO{},
		&intakerepo.QCDecisionDTO{},
		&inventoryrepo.ItemDTO{},
		&inventoryrepo.MovementDTO{},
	}
}

// SQLite opens a migrated sqlite database in the test's temp dir.
func SQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "custody.sqlite") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err = db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// Postgres starts a Postgres container, applies the goose migrations and
// returns the container with a connected gorm handle.
func Postgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}
	if err = migrations.Up(dsn); err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// Truncate empties every custody table.
func Truncate(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE sequence_counters, intakes, verifications, qc_decisions,
		inventory_items, stock_movements`).Error
}
