// Package blob re-exports the media storage abstractions for stable imports.
// Call sites depend on blob.Store; only this package wraps the infra-backed
// implementations.
package blob

import (
	"instructcore/internal/blob/core"
)

type (
	// Driver identifies a media storage backend driver.
	Driver = core.Driver
	// Kind classifies media by its role in the instruction graph.
	Kind = core.Kind
	// Info describes stored media metadata.
	Info = core.Info
	// Store is the interface for media storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory

	// KindImage covers substep images, part/tool photos, and previews.
	KindImage = core.KindImage
	// KindVideo covers video sources.
	KindVideo = core.KindVideo
	// KindOther covers keys outside the media pipeline's extensions.
	KindOther = core.KindOther
)

// ErrUnsupported indicates an operation isn't supported by a driver.
var ErrUnsupported = core.ErrUnsupported

// ContentTypeForKey infers a MIME type from a media key's extension.
func ContentTypeForKey(key string) string { return core.ContentTypeForKey(key) }

// KindForKey classifies a media key.
func KindForKey(key string) Kind { return core.KindForKey(key) }
