package storage

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lspratas/atelier/config"
	"github.com/lspratas/atelier/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	// Local disk is always available.
	disks["local"] = newLocalDisk()

	// S3 only when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

func defaultD() Disk {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }

// PathFromURL maps a public URL minted by URL back to its path on the
// default disk. Returns "" for URLs the default disk did not produce, and
// when storage is not connected.
func PathFromURL(u string) string {
	managerMu.RLock()
	d, ok := disks[defaultDisk]
	managerMu.RUnlock()
	if !ok || u == "" {
		return ""
	}

	base := strings.TrimRight(d.URL(""), "/")
	if base == "" || !strings.HasPrefix(u, base+"/") {
		return ""
	}
	return strings.TrimPrefix(u, base+"/")
}

// PutPublic streams r to path on the default disk and returns the public
// URL. The write completes before the URL is handed back, so callers can
// persist the URL knowing the blob exists.
func PutPublic(path string, r io.Reader) (string, error) {
	if err := PutStream(path, r); err != nil {
		return "", err
	}
	return URL(path), nil
}
