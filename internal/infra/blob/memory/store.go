// Package memory keeps media in process memory. Used by tests and by
// deployments that prune against an externally synchronized media set.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"instructcore/internal/blob/core"
)

type object struct {
	info core.Info
	data []byte
}

// Store implements core.Store over a key-indexed map.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

// New returns an empty in-memory media store.
func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Driver() core.Driver { return core.DriverMemory }

func (s *Store) Put(_ context.Context, key string, r io.Reader, contentType string) (core.Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Info{}, err
	}
	if contentType == "" {
		contentType = core.ContentTypeForKey(key)
	}
	info := core.Info{
		Key:         key,
		Kind:        core.KindForKey(key),
		Size:        int64(len(data)),
		ContentType: contentType,
		StoredAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		return core.Info{}, fmt.Errorf("media %s already exists", key)
	}
	s.objects[key] = object{info: info, data: data}
	return info, nil
}

func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return core.Info{}, nil, fmt.Errorf("media %s not found", key)
	}
	return obj.info, io.NopCloser(bytes.NewReader(append([]byte(nil), obj.data...))), nil
}

func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return core.Info{}, fmt.Errorf("media %s not found", key)
	}
	return obj.info, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return false, nil
	}
	delete(s.objects, key)
	return true, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]core.Info, 0, len(s.objects))
	for key, obj := range s.objects {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			infos = append(infos, obj.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// MediaURL is unsupported: memory objects are not addressable from outside
// the process.
func (s *Store) MediaURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", core.ErrUnsupported
}
