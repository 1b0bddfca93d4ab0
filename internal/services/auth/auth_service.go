package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventPublisher is the lifecycle-event sink; nil means events are skipped
type EventPublisher interface {
	Publish(event string, payload map[string]interface{}) error
}

// AuthService owns the session protocol: issuance, validation, rotation and
// invalidation of token pairs, plus the account flows built on top of it.
// Refresh tokens are single-use; access tokens are stateless and short-lived,
// so the hot request path never touches the session store.
type AuthService struct {
	users  UserStore
	tokens RefreshTokenStore
	roles  RoleStore
	events EventPublisher
	hasher *Hasher
	codec  *TokenCodec
	grace  time.Duration
}

func NewAuthService(cfg Config, users UserStore, tokens RefreshTokenStore, roles RoleStore, events EventPublisher) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		roles:  roles,
		events: events,
		hasher: NewHasher(cfg.Pepper),
		codec:  NewTokenCodec(cfg),
		grace:  cfg.DeactivationGrace,
	}
}

// Codec exposes the token codec for the bearer middleware
func (s *AuthService) Codec() *TokenCodec {
	return s.codec
}

// IssueSession mints an access+refresh pair for the user and persists a VALID
// record holding the refresh token's hash. All-or-nothing: if persistence
// fails no tokens are returned.
func (s *AuthService) IssueSession(userID string) (*models.TokenPair, error) {
	accessToken, err := s.codec.IssueAccess(userID)
	if err != nil {
		return nil, s.serverErr(err, "failed to sign access token")
	}

	refreshToken, tokenID, expiresAt, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return nil, s.serverErr(err, "failed to sign refresh token")
	}

	record := &models.RefreshToken{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: HashToken(refreshToken),
		Status:    models.TokenStatusValid,
		IssuedAt:  time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Create(record); err != nil {
		return nil, s.serverErr(err, "failed to persist refresh token")
	}

	return &models.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
		AccessExpiresIn:  s.codec.AccessTTL(),
	}, nil
}

// ValidateSession decodes the raw refresh token and loads its record. Every
// ambiguity — decode failure, unknown jti, non-valid status, expired record —
// collapses to ErrAuthentication; nothing lower-level leaks to the caller.
// Expiry is enforced both at decode time (signature-embedded) and against the
// record's expires_at.
func (s *AuthService) ValidateSession(rawToken string) (*models.RefreshToken, error) {
	claims, err := s.codec.DecodeRefresh(rawToken)
	if err != nil {
		logrus.WithError(err).Debug("refresh token rejected at decode")
		return nil, apperrors.ErrAuthentication
	}

	record, err := s.tokens.GetByID(claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAuthentication
		}
		return nil, s.serverErr(err, "failed to load refresh token")
	}

	if record.Status != models.TokenStatusValid || record.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrAuthentication
	}
	return record, nil
}

// RotateSession exchanges a valid refresh token for a fresh pair, marking the
// old record USED first. Single-use: a replayed token finds the record
// already USED and fails closed; under concurrent rotation at most one caller
// wins.
func (s *AuthService) RotateSession(rawToken string) (*models.TokenPair, error) {
	record, err := s.ValidateSession(rawToken)
	if err != nil {
		return nil, err
	}

	if err := s.InvalidateSession(record, models.TokenStatusUsed); err != nil {
		return nil, err
	}
	return s.IssueSession(record.UserID)
}

// InvalidateSession moves a record to a terminal status and stamps the
// corresponding timestamp. Transitions out of a terminal state are refused.
func (s *AuthService) InvalidateSession(record *models.RefreshToken, status models.TokenStatus) error {
	if record.Status != models.TokenStatusValid {
		return apperrors.ErrAuthentication
	}

	now := time.Now()
	record.Status = status
	switch status {
	case models.TokenStatusUsed:
		record.UsedAt = &now
	case models.TokenStatusRevoked:
		record.RevokedAt = &now
	default:
		return fmt.Errorf("%w: invalid target status %q", apperrors.ErrServer, status)
	}

	if err := s.tokens.Update(record); err != nil {
		return s.serverErr(err, "failed to invalidate refresh token")
	}
	return nil
}

// SignUp creates a student account
func (s *AuthService) SignUp(req *models.SignUpRequest) (*models.User, error) {
	exists, err := s.users.EmailExists(req.Email)
	if err != nil {
		return nil, s.serverErr(err, "failed to check email")
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, s.serverErr(err, "failed to hash password")
	}

	role, err := s.roles.GetByName(models.RoleStudent)
	if err != nil {
		return nil, s.serverErr(err, "failed to resolve student role")
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Nationality:  req.Nationality,
		PasswordHash: hashed,
		RoleID:       role.ID,
		IsActive:     true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, s.serverErr(err, "failed to create user")
	}
	user.Role = *role

	logrus.Infof("User %s signed up", user.ID)
	return user, nil
}

// SignIn verifies credentials and opens a new session
func (s *AuthService) SignIn(req *models.SignInRequest) (*models.User, *models.TokenPair, error) {
	user, err := s.verifyCredentials(req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrUserInactive
	}

	pair, err := s.IssueSession(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the session identified by the raw refresh token
func (s *AuthService) Logout(rawToken string) error {
	record, err := s.ValidateSession(rawToken)
	if err != nil {
		return err
	}
	return s.InvalidateSession(record, models.TokenStatusRevoked)
}

// UpdatePassword changes the caller's password and revokes all sessions
func (s *AuthService) UpdatePassword(userID, currentPassword, newPassword string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, s.notFoundOrServer(err)
	}

	if ok, _ := s.hasher.Verify(currentPassword, user.PasswordHash); !ok {
		return nil, apperrors.ErrCredential
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, s.serverErr(err, "failed to hash password")
	}
	user.PasswordHash = hashed
	if err := s.users.Update(user); err != nil {
		return nil, s.serverErr(err, "failed to update password")
	}

	if err := s.tokens.RevokeAllForUser(user.ID); err != nil {
		return nil, s.serverErr(err, "failed to revoke sessions")
	}
	return user, nil
}

// ResetPassword sets a new password by email and revokes all sessions
func (s *AuthService) ResetPassword(email, newPassword string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, s.notFoundOrServer(err)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, s.serverErr(err, "failed to hash password")
	}
	user.PasswordHash = hashed
	if err := s.users.Update(user); err != nil {
		return nil, s.serverErr(err, "failed to reset password")
	}

	if err := s.tokens.RevokeAllForUser(user.ID); err != nil {
		return nil, s.serverErr(err, "failed to revoke sessions")
	}
	return user, nil
}

// Deactivate disables the account, schedules its hard deletion and revokes
// all sessions. Sign-in refuses the account until it is reactivated.
func (s *AuthService) Deactivate(email, password string) error {
	user, err := s.verifyCredentials(email, password)
	if err != nil {
		return err
	}

	deleteAt := time.Now().Add(s.grace)
	user.IsActive = false
	user.DeleteAt = &deleteAt
	if err := s.users.Update(user); err != nil {
		return s.serverErr(err, "failed to deactivate user")
	}

	if err := s.tokens.RevokeAllForUser(user.ID); err != nil {
		return s.serverErr(err, "failed to revoke sessions")
	}

	s.publish("account.deactivated", map[string]interface{}{"user_id": user.ID})
	logrus.Infof("User %s deactivated, scheduled for deletion at %s", user.ID, deleteAt.Format(time.RFC3339))
	return nil
}

// Reactivate restores a deactivated account with the same credentials
func (s *AuthService) Reactivate(email, password string) (*models.User, error) {
	user, err := s.verifyCredentials(email, password)
	if err != nil {
		return nil, err
	}

	user.IsActive = true
	user.DeleteAt = nil
	if err := s.users.Update(user); err != nil {
		return nil, s.serverErr(err, "failed to reactivate user")
	}
	return user, nil
}

// DeleteAccount permanently removes the account after a password check
func (s *AuthService) DeleteAccount(email, password string) error {
	user, err := s.verifyCredentials(email, password)
	if err != nil {
		return err
	}

	if err := s.tokens.RevokeAllForUser(user.ID); err != nil {
		return s.serverErr(err, "failed to revoke sessions")
	}
	if err := s.users.Delete(user.ID); err != nil {
		return s.serverErr(err, "failed to delete user")
	}

	s.publish("account.deleted", map[string]interface{}{"user_id": user.ID})
	logrus.Infof("User %s deleted", user.ID)
	return nil
}

// verifyCredentials loads the user by email and checks the password. Missing
// user and wrong password both surface as ErrCredential so the response does
// not reveal which accounts exist.
func (s *AuthService) verifyCredentials(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrCredential
		}
		return nil, s.serverErr(err, "failed to load user")
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, s.serverErr(err, "failed to verify password")
	}
	if !ok {
		return nil, apperrors.ErrCredential
	}
	return user, nil
}

func (s *AuthService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		logrus.WithError(err).Warnf("Failed to publish %s event", event)
	}
}

func (s *AuthService) notFoundOrServer(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return s.serverErr(err, "failed to load user")
}

func (s *AuthService) serverErr(cause error, msg string) error {
	sentry.CaptureException(cause)
	logrus.WithError(cause).Error(msg)
	return fmt.Errorf("%w: %w", apperrors.ErrServer, cause)
}
