// Package fs implements the media store on the local filesystem, the default
// backend for development and single-machine deployments.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"instructcore/internal/blob/core"
)

const (
	objectDir = "objects"
	indexDir  = "index"
)

// Store keeps media content under <root>/objects/<key> and a JSON index entry
// per key under <root>/index/<key>.json. List and Head read only the index
// tree; an object without an index entry does not exist.
type Store struct {
	root string
}

// New returns a filesystem media store rooted at path, creating the layout if
// needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./mediadata"
	}
	for _, dir := range []string{objectDir, indexDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create media root: %w", err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// indexEntry is the persisted form of core.Info, minus the key (implicit in
// the entry's path).
type indexEntry struct {
	Kind        core.Kind `json:"kind"`
	ContentType string    `json:"content_type,omitempty"`
	SHA256      string    `json:"sha256"`
	Bytes       int64     `json:"bytes"`
	StoredAt    time.Time `json:"stored_at"`
}

// cleanKey validates that a media key stays inside the store root. Keys are
// slash-separated relative paths; anything empty, absolute, or escaping via
// ".." is rejected.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("empty media key")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("media key %q is absolute", key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(key, "..") {
		return "", fmt.Errorf("media key %q escapes the store root", key)
	}
	return clean, nil
}

func (s *Store) paths(key string) (object, index string, err error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	object = filepath.Join(s.root, objectDir, filepath.FromSlash(clean))
	index = filepath.Join(s.root, indexDir, filepath.FromSlash(clean)+".json")
	return object, index, nil
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, contentType string) (core.Info, error) {
	object, index, err := s.paths(key)
	if err != nil {
		return core.Info{}, err
	}
	if _, err := os.Stat(index); err == nil {
		return core.Info{}, fmt.Errorf("media %s already exists", key)
	}
	if err := os.MkdirAll(filepath.Dir(object), 0o755); err != nil {
		return core.Info{}, err
	}

	// Stream into a sibling temp file, hashing as we go, then rename.
	tmp, err := os.CreateTemp(filepath.Dir(object), ".partial-*")
	if err != nil {
		return core.Info{}, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	digest := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, digest), r)
	if err != nil {
		return core.Info{}, fmt.Errorf("write media %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		return core.Info{}, err
	}
	if err := os.Rename(tmp.Name(), object); err != nil {
		return core.Info{}, err
	}

	if contentType == "" {
		contentType = core.ContentTypeForKey(key)
	}
	entry := indexEntry{
		Kind:        core.KindForKey(key),
		ContentType: contentType,
		SHA256:      hex.EncodeToString(digest.Sum(nil)),
		Bytes:       size,
		StoredAt:    time.Now().UTC(),
	}
	if err := writeIndexEntry(index, entry); err != nil {
		return core.Info{}, fmt.Errorf("index media %s: %w", key, err)
	}
	return entry.info(key), nil
}

func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	object, index, err := s.paths(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	entry, err := readIndexEntry(index)
	if err != nil {
		return core.Info{}, nil, fmt.Errorf("media %s not found: %w", key, err)
	}
	file, err := os.Open(object)
	if err != nil {
		return core.Info{}, nil, err
	}
	return entry.info(key), file, nil
}

func (s *Store) Head(_ context.Context, key string) (core.Info, error) {
	_, index, err := s.paths(key)
	if err != nil {
		return core.Info{}, err
	}
	entry, err := readIndexEntry(index)
	if err != nil {
		return core.Info{}, fmt.Errorf("media %s not found: %w", key, err)
	}
	return entry.info(key), nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	object, index, err := s.paths(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(index); errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	if err := os.Remove(index); err != nil {
		return false, err
	}
	_ = os.Remove(object)
	return true, nil
}

func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	rootIndex := filepath.Join(s.root, indexDir)
	var infos []core.Info
	err := filepath.WalkDir(rootIndex, func(p string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".json") {
			return err
		}
		rel, err := filepath.Rel(rootIndex, p)
		if err != nil {
			return err
		}
		key := strings.TrimSuffix(filepath.ToSlash(rel), ".json")
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		entry, err := readIndexEntry(p)
		if err != nil {
			return err
		}
		infos = append(infos, entry.info(key))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// MediaURL returns a stable pseudo URL for local development; a fronting file
// server is expected to map the host to the objects directory.
func (s *Store) MediaURL(_ context.Context, key string, _ time.Duration) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "http", Host: "media.localhost", Path: "/" + clean}
	return u.String(), nil
}

func (e indexEntry) info(key string) core.Info {
	return core.Info{
		Key:         key,
		Kind:        e.Kind,
		Size:        e.Bytes,
		ContentType: e.ContentType,
		ETag:        e.SHA256,
		StoredAt:    e.StoredAt,
	}
}

func writeIndexEntry(path string, entry indexEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func readIndexEntry(path string) (indexEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return indexEntry{}, err
	}
	var entry indexEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		return indexEntry{}, err
	}
	return entry, nil
}
