// Package storage is the blob store behind product image uploads.
//
// Two drivers are available:
//   - "local" — local filesystem served under /storage (default, dev)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in internal/server, then upload and get back a public URL:
//
//	storage.Connect()
//	url, err := storage.PutPublic("products/1718000000_anel.jpg", file)
package storage

import (
	"io"
	"time"
)

// Disk is the blob driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes the file at path.
	Delete(path string) error

	// Size returns the byte size of the file.
	Size(path string) (int64, error)

	// LastModified returns the file's last-modified time.
	LastModified(path string) (time.Time, error)

	// URL returns the publicly fetchable URL for path.
	URL(path string) string
}
