package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"instructcore/internal/blob"
)

// Logger is the minimal structured logging surface the service emits to. It is
// satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type serviceOptions struct {
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	blobs   blob.Store
}

// ServiceOption customizes the observability and media wiring of a Service.
type ServiceOption func(*serviceOptions)

// WithLogger attaches a structured logger to the service.
func WithLogger(logger Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches a metrics recorder to the service.
func WithMetrics(metrics MetricsRecorder) ServiceOption {
	return func(o *serviceOptions) {
		o.metrics = metrics
	}
}

// WithTracer attaches a tracer to the service.
func WithTracer(tracer Tracer) ServiceOption {
	return func(o *serviceOptions) {
		o.tracer = tracer
	}
}

// WithBlobStore attaches the media blob backend used by PruneMedia.
func WithBlobStore(store blob.Store) ServiceOption {
	return func(o *serviceOptions) {
		o.blobs = store
	}
}

// Service couples the transient instruction store with a durable persistence
// adapter and an optional media blob backend. The store itself never performs
// I/O; the service reads its delta and snapshot and hands them to the adapter.
type Service struct {
	store      *Store
	persistent PersistentStore
	logger     Logger
	metrics    MetricsRecorder
	tracer     Tracer
	blobs      blob.Store
}

// NewService constructs a service over the supplied store and persistence
// adapter.
func NewService(store *Store, persistent PersistentStore, opts ...ServiceOption) *Service {
	options := serviceOptions{logger: noopLogger{}}
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{
		store:      store,
		persistent: persistent,
		logger:     options.logger,
		metrics:    options.metrics,
		tracer:     options.tracer,
		blobs:      options.blobs,
	}
}

// Store returns the underlying transient store.
func (s *Service) Store() *Store {
	return s.store
}

// Save persists the accumulated delta followed by a full snapshot, then clears
// the store's change tracking so the baseline advances to the saved state.
// Saving with no pending changes is a no-op.
func (s *Service) Save(ctx context.Context) error {
	return s.run(ctx, "save", func(ctx context.Context) error {
		if !s.store.HasChanges() {
			s.logger.Debug("save skipped, no pending changes")
			return nil
		}
		delta := s.store.ChangedData()
		if err := s.persistent.SaveDelta(ctx, delta); err != nil {
			return fmt.Errorf("save delta: %w", err)
		}
		if err := s.persistent.SaveSnapshot(ctx, s.store.ExportState()); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		s.store.ClearChanges()
		s.logger.Info("instruction saved")
		return nil
	})
}

// Load replaces the store's graph with the durable snapshot. When no snapshot
// exists yet the store is left untouched.
func (s *Service) Load(ctx context.Context) error {
	return s.run(ctx, "load", func(ctx context.Context) error {
		snapshot, ok, err := s.persistent.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if !ok {
			s.logger.Debug("no durable snapshot yet")
			return nil
		}
		s.store.SetData(snapshot)
		s.logger.Info("instruction loaded")
		return nil
	})
}

// PruneMedia deletes blobs that no record in the current graph references.
// Returns the number of blobs removed. A service without a blob backend
// prunes nothing.
func (s *Service) PruneMedia(ctx context.Context) (int, error) {
	removed := 0
	err := s.run(ctx, "prune_media", func(ctx context.Context) error {
		if s.blobs == nil {
			return nil
		}
		referenced := s.referencedMediaKeys()
		infos, err := s.blobs.List(ctx, "")
		if err != nil {
			return fmt.Errorf("list blobs: %w", err)
		}
		for _, info := range infos {
			if _, ok := referenced[info.Key]; ok {
				continue
			}
			deleted, err := s.blobs.Delete(ctx, info.Key)
			if err != nil {
				return fmt.Errorf("delete blob %s: %w", info.Key, err)
			}
			if deleted {
				removed++
				s.logger.Debug("pruned unreferenced blob", "key", info.Key)
			}
		}
		return nil
	})
	return removed, err
}

func (s *Service) referencedMediaKeys() map[string]struct{} {
	snapshot := s.store.ExportState()
	keys := make(map[string]struct{})
	add := func(key string) {
		if strings.TrimSpace(key) != "" {
			keys[key] = struct{}{}
		}
	}
	for _, v := range snapshot.Videos {
		add(v.MediaKey)
	}
	for _, img := range snapshot.SubstepImages {
		add(img.MediaKey)
	}
	for _, pt := range snapshot.PartTools {
		add(pt.MediaKey)
	}
	if snapshot.Instruction != nil {
		add(snapshot.Instruction.PreviewImageID)
	}
	return keys
}

// run wraps an operation with tracing, metrics, and error logging.
func (s *Service) run(ctx context.Context, operation string, fn func(context.Context) error) error {
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, err == nil, time.Since(start))
	}
	if span != nil {
		span.End(err)
	}
	if err != nil {
		s.logger.Error("operation failed", "operation", operation, "error", err)
	}
	return err
}
