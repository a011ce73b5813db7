package core

import (
	"context"
	"fmt"
	"os"

	"instructcore/internal/infra/persistence/memory"
	"instructcore/internal/infra/persistence/postgres"
	"instructcore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenPersistentStore selects a backend using environment variables.
// Defaults to sqlite when unset.
//
//	INSTRUCTCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	INSTRUCTCORE_SQLITE_PATH: path to sqlite file (default ./instructcore.db)
//	INSTRUCTCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStore(ctx context.Context) (PersistentStore, error) {
	driver := os.Getenv("INSTRUCTCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		path := os.Getenv("INSTRUCTCORE_SQLITE_PATH")
		return sqlite.NewStore(path)
	case StoragePostgres:
		dsn := os.Getenv("INSTRUCTCORE_POSTGRES_DSN")
		return postgres.NewStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
