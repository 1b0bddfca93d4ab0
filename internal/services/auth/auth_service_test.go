package auth

import (
	"testing"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserStore) Update(user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) Delete(id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) DeleteScheduled() (int64, error) {
	var deleted int64
	now := time.Now()
	for id, user := range f.users {
		if user.DeleteAt != nil && user.DeleteAt.Before(now) {
			delete(f.users, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTokenStore struct {
	records map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{records: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) Create(token *models.RefreshToken) error {
	cp := *token
	f.records[token.ID] = &cp
	return nil
}

func (f *fakeTokenStore) GetByID(id string) (*models.RefreshToken, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *record
	return &cp, nil
}

func (f *fakeTokenStore) Update(token *models.RefreshToken) error {
	if _, ok := f.records[token.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *token
	f.records[token.ID] = &cp
	return nil
}

func (f *fakeTokenStore) RevokeAllForUser(userID string) error {
	now := time.Now()
	for _, record := range f.records {
		if record.UserID == userID && record.Status == models.TokenStatusValid {
			record.Status = models.TokenStatusRevoked
			record.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeTokenStore) DeleteStale() (int64, error) {
	var deleted int64
	now := time.Now()
	for id, record := range f.records {
		if record.Status != models.TokenStatusValid || record.ExpiresAt.Before(now) {
			delete(f.records, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeRoleStore struct {
	roles map[string]*models.Role
}

func newFakeRoleStore() *fakeRoleStore {
	store := &fakeRoleStore{roles: make(map[string]*models.Role)}
	for _, name := range []string{models.RoleStudent, models.RoleInstructor, models.RoleAdmin} {
		store.roles[name] = &models.Role{ID: uuid.NewString(), Name: name}
	}
	return store
}

func (f *fakeRoleStore) GetByName(name string) (*models.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

type fakeEvents struct {
	published []string
}

func (f *fakeEvents) Publish(event string, payload map[string]interface{}) error {
	f.published = append(f.published, event)
	return nil
}

func testServiceConfig() Config {
	return Config{
		AccessSecret:      []byte("access-test-secret"),
		RefreshSecret:     []byte("refresh-test-secret"),
		Pepper:            "test-pepper",
		AccessTTL:         time.Minute,
		RefreshTTL:        time.Hour,
		Issuer:            "enroll-backend-test",
		DeactivationGrace: time.Hour,
	}
}

func newTestService() (*AuthService, *fakeUserStore, *fakeTokenStore, *fakeEvents) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	events := &fakeEvents{}
	service := NewAuthService(testServiceConfig(), users, tokens, newFakeRoleStore(), events)
	return service, users, tokens, events
}

func signUpUser(t *testing.T, service *AuthService, email string) *models.User {
	t.Helper()
	user, err := service.SignUp(&models.SignUpRequest{
		Name:        "Test User",
		Email:       email,
		Nationality: "NL",
		Password:    "initial-password",
	})
	require.NoError(t, err)
	return user
}

func TestIssueSessionPersistsValidRecord(t *testing.T) {
	service, _, tokens, _ := newTestService()

	pair, err := service.IssueSession("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := service.Codec().DecodeRefresh(pair.RefreshToken)
	require.NoError(t, err)

	record, err := tokens.GetByID(claims.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TokenStatusValid, record.Status)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, HashToken(pair.RefreshToken), record.TokenHash)
	assert.WithinDuration(t, pair.RefreshExpiresAt, record.ExpiresAt, time.Second)
}

func TestRotateSessionIsSingleUse(t *testing.T) {
	service, _, tokens, _ := newTestService()

	pair, err := service.IssueSession("user-1")
	require.NoError(t, err)

	rotated, err := service.RotateSession(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old record is terminal
	claims, err := service.Codec().DecodeRefresh(pair.RefreshToken)
	require.NoError(t, err)
	record, err := tokens.GetByID(claims.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TokenStatusUsed, record.Status)
	assert.NotNil(t, record.UsedAt)

	// Replaying the consumed token fails closed
	_, err = service.RotateSession(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	// The fresh token still works
	_, err = service.ValidateSession(rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestValidateSessionRejectsRevoked(t *testing.T) {
	service, _, _, _ := newTestService()

	pair, err := service.IssueSession("user-1")
	require.NoError(t, err)

	require.NoError(t, service.Logout(pair.RefreshToken))

	_, err = service.ValidateSession(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestValidateSessionRejectsExpiredRecord(t *testing.T) {
	service, _, tokens, _ := newTestService()

	pair, err := service.IssueSession("user-1")
	require.NoError(t, err)

	// The token still decodes, but the store says the session is over
	claims, err := service.Codec().DecodeRefresh(pair.RefreshToken)
	require.NoError(t, err)
	record := tokens.records[claims.ID]
	record.ExpiresAt = time.Now().Add(-time.Minute)

	_, err = service.ValidateSession(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	service, _, _, _ := newTestService()

	_, err := service.ValidateSession("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestInvalidateSessionRefusesTerminalRecord(t *testing.T) {
	service, _, _, _ := newTestService()

	record := &models.RefreshToken{
		ID:     uuid.NewString(),
		Status: models.TokenStatusUsed,
	}
	err := service.InvalidateSession(record, models.TokenStatusRevoked)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}

func TestSignUpAndSignIn(t *testing.T) {
	service, _, _, _ := newTestService()

	user := signUpUser(t, service, "alice@example.com")
	assert.Equal(t, models.RoleStudent, user.Role.Name)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "initial-password", user.PasswordHash)

	// Duplicate email is refused
	_, err := service.SignUp(&models.SignUpRequest{
		Name: "Other", Email: "alice@example.com", Nationality: "NL", Password: "other-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserExists)

	signedIn, pair, err := service.SignIn(&models.SignInRequest{
		Email: "alice@example.com", Password: "initial-password",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)

	claims, err := service.Codec().DecodeAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestSignInBadCredentials(t *testing.T) {
	service, _, _, _ := newTestService()
	signUpUser(t, service, "alice@example.com")

	_, _, err := service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrCredential)

	// Unknown email reads the same as a wrong password
	_, _, err = service.SignIn(&models.SignInRequest{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrCredential)
}

func TestUpdatePasswordRevokesSessions(t *testing.T) {
	service, _, _, _ := newTestService()
	user := signUpUser(t, service, "alice@example.com")

	_, pair, err := service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "initial-password"})
	require.NoError(t, err)

	_, err = service.UpdatePassword(user.ID, "wrong", "next-password")
	assert.ErrorIs(t, err, apperrors.ErrCredential)

	_, err = service.UpdatePassword(user.ID, "initial-password", "next-password")
	require.NoError(t, err)

	// Every open session is gone
	_, err = service.ValidateSession(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	_, _, err = service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "next-password"})
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	service, _, _, _ := newTestService()
	signUpUser(t, service, "alice@example.com")

	_, err := service.ResetPassword("nobody@example.com", "next-password")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = service.ResetPassword("alice@example.com", "next-password")
	require.NoError(t, err)

	_, _, err = service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "next-password"})
	assert.NoError(t, err)
}

func TestDeactivateAndReactivate(t *testing.T) {
	service, users, _, events := newTestService()
	user := signUpUser(t, service, "alice@example.com")

	_, pair, err := service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "initial-password"})
	require.NoError(t, err)

	require.NoError(t, service.Deactivate("alice@example.com", "initial-password"))
	assert.Contains(t, events.published, "account.deactivated")

	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	require.NotNil(t, stored.DeleteAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.DeleteAt, 5*time.Second)

	_, err = service.ValidateSession(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	_, _, err = service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "initial-password"})
	assert.ErrorIs(t, err, apperrors.ErrUserInactive)

	reactivated, err := service.Reactivate("alice@example.com", "initial-password")
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
	assert.Nil(t, reactivated.DeleteAt)

	_, _, err = service.SignIn(&models.SignInRequest{Email: "alice@example.com", Password: "initial-password"})
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	service, users, _, events := newTestService()
	user := signUpUser(t, service, "alice@example.com")

	err := service.DeleteAccount("alice@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrCredential)

	require.NoError(t, service.DeleteAccount("alice@example.com", "initial-password"))
	assert.Contains(t, events.published, "account.deleted")

	_, err = users.GetByID(user.ID)
	assert.Error(t, err)
}

func TestStaleTokenSweep(t *testing.T) {
	service, _, tokens, _ := newTestService()

	kept, err := service.IssueSession("user-1")
	require.NoError(t, err)
	rotatedAway, err := service.IssueSession("user-1")
	require.NoError(t, err)
	_, err = service.RotateSession(rotatedAway.RefreshToken)
	require.NoError(t, err)

	deleted, err := tokens.DeleteStale()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// Sweeping again removes nothing
	deleted, err = tokens.DeleteStale()
	require.NoError(t, err)
	assert.Zero(t, deleted)

	_, err = service.ValidateSession(kept.RefreshToken)
	assert.NoError(t, err)
}

func TestScheduledAccountSweep(t *testing.T) {
	service, users, _, _ := newTestService()
	user := signUpUser(t, service, "alice@example.com")
	signUpUser(t, service, "bob@example.com")

	past := time.Now().Add(-time.Minute)
	stored := users.users[user.ID]
	stored.IsActive = false
	stored.DeleteAt = &past

	deleted, err := users.DeleteScheduled()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = users.GetByID(user.ID)
	assert.Error(t, err)
	_, err = users.GetByEmail("bob@example.com")
	assert.NoError(t, err)
}
