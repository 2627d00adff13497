package filestore

import (
	"io"
	"time"
)

// ObjectInfo describes a single object stored in a bucket.
type ObjectInfo struct {
	// Key is the full object path within the bucket (e.g. "out/User.cs").
	Key string

	// Size is the byte size of the object. -1 if unknown.
	Size int64

	ContentType  string
	ETag         string
	LastModified time.Time

	// IsDir is true for virtual directory (common prefix) entries.
	IsDir bool
}

// Object is a streaming handle to an object's content.
type Object interface {
	io.ReadCloser

	Info() *ObjectInfo
}

// ListOptions controls how ListObjects filters results.
type ListOptions struct {
	// Prefix restricts results to keys starting with this string.
	Prefix string

	// Recursive lists every object under Prefix instead of grouping by
	// virtual directories.
	Recursive bool

	// Limit caps the number of results. 0 means no cap.
	Limit int
}

// PutOptions carries object metadata for PutObject.
type PutOptions struct {
	ContentType string

	// Metadata is stored as user metadata on the object.
	Metadata map[string]string
}
