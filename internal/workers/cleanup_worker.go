package workers

import (
	"context"
	"log"
	"time"

	"casting_backend/internal/auth"
	"casting_backend/internal/repositories"
)

type CleanupWorker struct {
	tokenRepo repositories.ResetTokenRepository
	codes     *auth.CodeStore
}

func NewCleanupWorker(tokenRepo repositories.ResetTokenRepository, codes *auth.CodeStore) *CleanupWorker {
	return &CleanupWorker{tokenRepo: tokenRepo, codes: codes}
}

// Start запускает фоновую чистку токенов сброса и кодов привязки
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *CleanupWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cleanup worker stopped")
			return
		case <-ticker.C:
			removed, err := w.tokenRepo.DeleteExpired()
			if err != nil {
				log.Printf("Error deleting expired reset tokens: %v", err)
			} else if removed > 0 {
				log.Printf("Deleted %d expired reset tokens", removed)
			}

			if swept := w.codes.Sweep(); swept > 0 {
				log.Printf("Swept %d expired verification codes", swept)
			}
		}
	}
}
