// Command mediaprune loads the durable instruction snapshot and deletes media
// blobs no graph record references. Storage and blob backends are selected via
// the INSTRUCTCORE_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"instructcore/internal/blob"
	"instructcore/internal/core"
)

var exitFunc = os.Exit

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	dryRun := flag.Bool("dry-run", false, "report unreferenced blobs without deleting")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*timeout, *dryRun, logger); err != nil {
		logger.Error("mediaprune failed", "error", err)
		exitFunc(1)
	}
}

func run(timeout time.Duration, dryRun bool, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	persistent, err := core.OpenPersistentStore(ctx)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = persistent.Close() }()

	blobs, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	store := core.NewStore()
	svc := core.NewService(store, persistent, core.WithLogger(logger), core.WithBlobStore(blobs))
	if err := svc.Load(ctx); err != nil {
		return err
	}
	if !store.Loaded() {
		logger.Info("no snapshot found, nothing to prune")
		return nil
	}
	if dryRun {
		infos, err := blobs.List(ctx, "")
		if err != nil {
			return fmt.Errorf("list blobs: %w", err)
		}
		byKind := make(map[blob.Kind]int)
		for _, info := range infos {
			byKind[info.Kind]++
		}
		logger.Info("dry run", "total", len(infos),
			"images", byKind[blob.KindImage], "videos", byKind[blob.KindVideo])
		return nil
	}
	removed, err := svc.PruneMedia(ctx)
	if err != nil {
		return err
	}
	logger.Info("prune complete", "removed", removed)
	return nil
}
