package auth

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// AccountCleanupService hard-deletes accounts whose scheduled deletion
// timestamp has passed. Deactivation sets that timestamp; reactivation clears
// it, so only accounts still deactivated at sweep time are removed.
type AccountCleanupService struct {
	users    UserStore
	interval time.Duration
	stopChan chan bool
}

func NewAccountCleanupService(users UserStore) *AccountCleanupService {
	interval := 24 * time.Hour
	if v := os.Getenv("ACCOUNT_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}
	return &AccountCleanupService{
		users:    users,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start starts the account cleanup service
func (s *AccountCleanupService) Start() {
	go s.run()
	logrus.Infof("Account cleanup service started (interval %s)", s.interval)
}

// Stop stops the account cleanup service
func (s *AccountCleanupService) Stop() {
	s.stopChan <- true
	logrus.Info("Account cleanup service stopped")
}

func (s *AccountCleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

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

// Cleanup performs one sweep of accounts past their scheduled deletion
func (s *AccountCleanupService) Cleanup() {
	deleted, err := s.users.DeleteScheduled()
	if err != nil {
		sentry.CaptureException(err)
		logrus.Errorf("Failed to cleanup scheduled accounts: %v", err)
		return
	}
	logrus.Infof("Account cleanup completed, %d accounts removed", deleted)
}
