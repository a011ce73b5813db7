// Package core defines the contract shared by the media storage backends.
// Instruction media (video sources, substep images, part and tool photos,
// preview images) is addressed by the media keys carried on graph records.
package core

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// Driver identifies a concrete media storage backend.
type Driver string

const (
	// DriverFilesystem stores media under a local directory (default, dev).
	DriverFilesystem Driver = "fs"
	// DriverS3 stores media in an S3 or MinIO bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps media in process memory (tests).
	DriverMemory Driver = "memory"
)

// Kind classifies a media key by the role it plays in the instruction graph.
type Kind string

const (
	KindImage Kind = "image" // substep images, part/tool photos, previews
	KindVideo Kind = "video" // video sources
	KindOther Kind = "other"
)

var contentTypeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// ContentTypeForKey infers a MIME type from the key's extension. Returns the
// empty string for extensions the instruction media pipeline does not produce.
func ContentTypeForKey(key string) string {
	return contentTypeByExt[strings.ToLower(path.Ext(key))]
}

// KindForKey classifies a media key via its inferred content type.
func KindForKey(key string) Kind {
	ct := ContentTypeForKey(key)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindImage
	case strings.HasPrefix(ct, "video/"):
		return KindVideo
	default:
		return KindOther
	}
}

// Info describes one stored media object.
type Info struct {
	Key         string    `json:"key"`
	Kind        Kind      `json:"kind"`
	Size        int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	ETag        string    `json:"etag,omitempty"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store is the surface the media backends implement. Writes are create-only:
// media keys are immutable once referenced by a graph record, so replacing
// content means storing under a new key. MediaURL yields a read-only URL a
// viewer can fetch the media from; backends without a URL scheme return
// ErrUnsupported.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	MediaURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Driver() Driver
}

// ErrUnsupported is returned when a backend lacks an optional capability.
var ErrUnsupported = errors.New("mediastore: unsupported operation")
