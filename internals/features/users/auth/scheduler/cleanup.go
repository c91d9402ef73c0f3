package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"roadmapguide_backend/internals/features/users/auth/repository"
)

// StartBlacklistCleanupScheduler prunes expired blacklist rows once a day.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		for {
			log.Println("[CLEANUP] Pruning token_blacklist...")

			if n, err := repository.DeleteExpiredBlacklist(db); err != nil {
				log.Printf("[CLEANUP ERROR] Failed to delete expired tokens: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d expired tokens removed", n)
			} else {
				log.Println("[CLEANUP] Nothing to remove")
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
