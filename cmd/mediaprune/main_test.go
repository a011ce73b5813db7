package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestRunWithoutSnapshot(t *testing.T) {
	t.Setenv("INSTRUCTCORE_STORAGE_DRIVER", "memory")
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "memory")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if err := run(time.Second, false, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "no snapshot found") {
		t.Fatalf("expected the empty-state log line, got: %s", buf.String())
	}
}

func TestRunDryRun(t *testing.T) {
	t.Setenv("INSTRUCTCORE_STORAGE_DRIVER", "memory")
	t.Setenv("INSTRUCTCORE_BLOB_DRIVER", "memory")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	if err := run(time.Second, true, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	t.Setenv("INSTRUCTCORE_STORAGE_DRIVER", "tape")
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if err := run(time.Second, false, logger); err == nil {
		t.Fatalf("unknown storage driver must fail")
	}
}
