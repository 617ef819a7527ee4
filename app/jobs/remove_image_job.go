// Package jobs defines the background jobs dispatched by the services.
package jobs

import (
	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/queue"
	"github.com/lspratas/atelier/pkg/storage"
)

// RemoveImageJob deletes a stored product image nothing references anymore:
// the product was deleted, or its image was replaced.
type RemoveImageJob struct {
	Path string `json:"path"`
}

func (j *RemoveImageJob) Handle() error {
	return storage.Delete(j.Path)
}

func init() {
	queue.Register(queue.TypeName(&RemoveImageJob{}), func() queue.Job { return &RemoveImageJob{} })
}

// CleanupImage enqueues removal of the blob behind a public image URL.
// URLs that did not come from our storage (or an unconfigured storage) are
// ignored, so callers can pass whatever the product record held.
func CleanupImage(imageURL string) {
	path := storage.PathFromURL(imageURL)
	if path == "" {
		return
	}
	if err := queue.Dispatch(&RemoveImageJob{Path: path}); err != nil {
		logger.Warn("image cleanup dispatch failed", "path", path, "error", err)
	}
}
