package auth

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// TokenCleanupService periodically deletes refresh token records that are no
// longer useful: terminal status (used, revoked) or past expiry. It runs
// detached from the request path; a failed sweep is logged and naturally
// retried on the next tick.
type TokenCleanupService struct {
	tokens   RefreshTokenStore
	interval time.Duration
	stopChan chan bool
}

func NewTokenCleanupService(tokens RefreshTokenStore) *TokenCleanupService {
	interval := 24 * time.Hour
	if v := os.Getenv("TOKEN_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}
	return &TokenCleanupService{
		tokens:   tokens,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start starts the token cleanup service
func (s *TokenCleanupService) Start() {
	go s.run()
	logrus.Infof("Token cleanup service started (interval %s)", s.interval)
}

// Stop stops the token cleanup service
func (s *TokenCleanupService) Stop() {
	s.stopChan <- true
	logrus.Info("Token cleanup service stopped")
}

func (s *TokenCleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run initial cleanup
	s.Cleanup()

	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stopChan:
			return
		}
	}
}

// Cleanup performs one sweep. Deleting the same set twice is a no-op, so a
// rerun after a partial failure is safe.
func (s *TokenCleanupService) Cleanup() {
	deleted, err := s.tokens.DeleteStale()
	if err != nil {
		sentry.CaptureException(err)
		logrus.Errorf("Failed to cleanup refresh tokens: %v", err)
		return
	}
	logrus.Infof("Token cleanup completed, %d records removed", deleted)
}

// SetInterval sets the cleanup interval
func (s *TokenCleanupService) SetInterval(interval time.Duration) {
	s.interval = interval
}
