package cron

import (
	"context"
	"fmt"
	"log"
	"time"
)

// staleUploadAge is how long an uploaded original may sit in the bucket
// before the janitor considers it leaked. The request path deletes uploads
// itself; anything older than this survived a crash or a failed delete.
const staleUploadAge = time.Hour

// CleanupStaleUploads removes leftover rubric originals from object storage.
func (m *CronManager) CleanupStaleUploads() {
	entry := m.logJobStart("cleanup_stale_uploads")

	if m.storage == nil {
		m.logJobFinish(entry, "completed", "object storage not configured, nothing to do")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stale, err := m.storage.ListStaleUploads(ctx, staleUploadAge)
	if err != nil {
		log.Println("Cleanup job failed to list uploads:", err)
		m.logJobFinish(entry, "failed", err.Error())
		return
	}

	removed := 0
	for _, key := range stale {
		if err := m.storage.DeleteObject(ctx, key); err != nil {
			log.Println("Cleanup job failed to delete object:", err)
			continue
		}
		removed++
	}

	m.logJobFinish(entry, "completed", fmt.Sprintf("removed %d of %d stale uploads", removed, len(stale)))
}
