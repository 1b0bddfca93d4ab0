package auth

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the secrets and durations of the session subsystem
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Pepper        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
	// DeactivationGrace is how long a deactivated account survives before the
	// account sweep hard-deletes it.
	DeactivationGrace time.Duration
}

// LoadConfig reads the session configuration from the environment
func LoadConfig() Config {
	accessSecret := []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
	if len(accessSecret) == 0 {
		accessSecret = []byte("default-access-secret-change-in-production")
	}
	refreshSecret := []byte(os.Getenv("REFRESH_TOKEN_SECRET"))
	if len(refreshSecret) == 0 {
		refreshSecret = []byte("default-refresh-secret-change-in-production")
	}

	accessTTL := 15 * time.Minute
	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			accessTTL = parsed
		}
	}

	refreshTTL := 7 * 24 * time.Hour // 7 days
	if ttl := os.Getenv("REFRESH_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			refreshTTL = parsed
		}
	}

	logrus.Infof("Access token TTL: %s", accessTTL)
	logrus.Infof("Refresh token TTL: %s", refreshTTL)

	return Config{
		AccessSecret:      accessSecret,
		RefreshSecret:     refreshSecret,
		Pepper:            os.Getenv("PASSWORD_PEPPER"),
		AccessTTL:         accessTTL,
		RefreshTTL:        refreshTTL,
		Issuer:            "enroll-backend",
		DeactivationGrace: 30 * 24 * time.Hour,
	}
}
