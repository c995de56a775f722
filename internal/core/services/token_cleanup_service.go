package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// TokenCleanupService purges dead revocation records on a schedule.
// Revoked tokens only need to stay on the list while they could still
// pass verification.
type TokenCleanupService struct {
	auth *AuthService
	cron *cron.Cron
}

// NewTokenCleanupService creates a new token cleanup service
func NewTokenCleanupService(auth *AuthService) *TokenCleanupService {
	return &TokenCleanupService{
		auth: auth,
		cron: cron.New(),
	}
}

// Start schedules the hourly purge
func (s *TokenCleanupService) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		removed, err := s.auth.PurgeExpiredTokens(context.Background())
		if err != nil {
			log.Printf("❌ Token purge failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("✅ Purged %d expired token records", removed)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 Token cleanup scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *TokenCleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
