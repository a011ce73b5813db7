package blob

import (
	"context"
	"testing"
)

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", store.Driver())
	}
}

func TestOpenFilesystemRoot(t *testing.T) {
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "fs")
	t.Setenv("INSTRUCTCORE_BLOB_FS_ROOT", t.TempDir())
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("expected filesystem driver, got %s", store.Driver())
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "floppy")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "s3")
	t.Setenv("INSTRUCTCORE_BLOB_S3_BUCKET", "")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("s3 driver without bucket must fail")
	}
}
