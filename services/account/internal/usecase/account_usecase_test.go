package usecase

import (
	"context"
	"testing"
	"time"

	"streamlane/pkg/apperr"
	"streamlane/pkg/jwt"
	"streamlane/pkg/logger"
	"streamlane/services/account/internal/entity"
	"streamlane/services/account/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if user.ID == "" {
		user.ID = "user-new"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetProfileByUserID(userID string) (*entity.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(profile *entity.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) SaveOneTimeToken(ctx context.Context, purpose, token, userID string, ttl time.Duration) error {
	args := m.Called(ctx, purpose, token, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) ConsumeOneTimeToken(ctx context.Context, purpose, token string) (string, error) {
	args := m.Called(ctx, purpose, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) PeekOneTimeToken(ctx context.Context, purpose, token string) (string, error) {
	args := m.Called(ctx, purpose, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) RevokeRefreshToken(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsRefreshTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

var _ TokenStore = (*MockTokenStore)(nil)

func newTestUseCase(repo *MockUserRepository, store *MockTokenStore) AccountUseCase {
	jwtService := jwt.NewService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	return NewAccountUseCase(repo, store, jwtService, nil, "http://localhost:8080", logger.New())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestRegister_EmailConflict(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("EmailExists", "taken@example.com").Return(true, nil)

	err := uc.Register(context.Background(), "taken@example.com", "someone", "password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	repo.AssertExpectations(t)
}

func TestRegister_UsernameConflict(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("EmailExists", "new@example.com").Return(false, nil)
	repo.On("UsernameExists", "taken").Return(true, nil)

	err := uc.Register(context.Background(), "new@example.com", "taken", "password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegister_CreatesInactiveUserAndStoresToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("EmailExists", "new@example.com").Return(false, nil)
	repo.On("UsernameExists", "newbie").Return(false, nil)
	repo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com" && !u.IsActive && u.Role == entity.RoleUser
	})).Return(nil)
	store.On("SaveOneTimeToken", mock.Anything, PurposeVerifyEmail, mock.Anything, mock.Anything, 24*time.Hour).Return(nil)

	err := uc.Register(context.Background(), "new@example.com", "newbie", "password")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRegister_EmptyUsernameAllowed(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("EmailExists", "new@example.com").Return(false, nil)
	repo.On("Create", mock.Anything).Return(nil)
	store.On("SaveOneTimeToken", mock.Anything, PurposeVerifyEmail, mock.Anything, mock.Anything, 24*time.Hour).Return(nil)

	err := uc.Register(context.Background(), "new@example.com", "", "password")
	assert.NoError(t, err)
	// Empty usernames never collide, so no conflict check runs for them.
	repo.AssertNotCalled(t, "UsernameExists", mock.Anything)
}

func TestVerifyEmail_Activates(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	user := &entity.User{ID: "user-1", IsActive: false}
	repo.On("GetByID", "user-1").Return(user, nil)
	store.On("PeekOneTimeToken", mock.Anything, PurposeVerifyEmail, "tok").Return("user-1", nil)
	store.On("ConsumeOneTimeToken", mock.Anything, PurposeVerifyEmail, "tok").Return("user-1", nil)
	repo.On("Update", mock.MatchedBy(func(u *entity.User) bool { return u.IsActive })).Return(nil)

	alreadyActive, err := uc.VerifyEmail(context.Background(), "user-1", "tok")
	assert.NoError(t, err)
	assert.False(t, alreadyActive)
	repo.AssertExpectations(t)
}

func TestVerifyEmail_AlreadyActive(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", IsActive: true}, nil)

	alreadyActive, err := uc.VerifyEmail(context.Background(), "user-1", "tok")
	assert.NoError(t, err)
	assert.True(t, alreadyActive)
	// Token must not be consumed for an already verified account.
	store.AssertNotCalled(t, "ConsumeOneTimeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyEmail_InvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByID", "user-1").Return(&entity.User{ID: "user-1", IsActive: false}, nil)
	store.On("PeekOneTimeToken", mock.Anything, PurposeVerifyEmail, "bad").Return("", nil)

	_, err := uc.VerifyEmail(context.Background(), "user-1", "bad")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestVerifyEmail_WrongUserKeepsToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByID", "user-2").Return(&entity.User{ID: "user-2", IsActive: false}, nil)
	store.On("PeekOneTimeToken", mock.Anything, PurposeVerifyEmail, "tok").Return("user-1", nil)

	_, err := uc.VerifyEmail(context.Background(), "user-2", "tok")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	// The token still belongs to user-1 and must survive the failed attempt.
	store.AssertNotCalled(t, "ConsumeOneTimeToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	user := &entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Password: hashPassword(t, "password"),
		Role:     entity.RoleUser,
		IsActive: true,
	}
	repo.On("GetByEmail", "user@example.com").Return(user, nil)
	repo.On("Update", mock.Anything).Return(nil)

	got, tokens, err := uc.Login(context.Background(), "user@example.com", "password")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Empty(t, got.Password)
	assert.NotNil(t, got.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	user := &entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Password: hashPassword(t, "password"),
		IsActive: true,
	}
	repo.On("GetByEmail", "user@example.com").Return(user, nil)

	_, _, err := uc.Login(context.Background(), "user@example.com", "wrong")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	user := &entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Password: hashPassword(t, "password"),
		IsActive: false,
	}
	repo.On("GetByEmail", "user@example.com").Return(user, nil)

	_, _, err := uc.Login(context.Background(), "user@example.com", "password")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	jwtService := jwt.NewService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	refresh, err := jwtService.GenerateRefreshToken("user-1", "user")
	assert.NoError(t, err)

	store.On("RevokeRefreshToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err = uc.Logout(context.Background(), refresh)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestLogout_InvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	err := uc.Logout(context.Background(), "garbage")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestRefreshAccessToken_Revoked(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	jwtService := jwt.NewService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	refresh, _ := jwtService.GenerateRefreshToken("user-1", "user")

	store.On("IsRefreshTokenRevoked", mock.Anything, mock.Anything).Return(true, nil)

	_, err := uc.RefreshAccessToken(context.Background(), refresh)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestRefreshAccessToken_Success(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	jwtService := jwt.NewService("test-secret-key", 15*time.Minute, 7*24*time.Hour)
	refresh, _ := jwtService.GenerateRefreshToken("user-1", "user")

	store.On("IsRefreshTokenRevoked", mock.Anything, mock.Anything).Return(false, nil)

	access, err := uc.RefreshAccessToken(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	repo.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	// Unknown address must not surface an error (no account enumeration).
	err := uc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.NoError(t, err)
	store.AssertNotCalled(t, "SaveOneTimeToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPasswordReset_InvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	store.On("ConsumeOneTimeToken", mock.Anything, PurposePasswordReset, "bad").Return("", nil)

	err := uc.ConfirmPasswordReset(context.Background(), "bad", "newpassword")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestConfirmPasswordReset_RehashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	oldHash := hashPassword(t, "oldpassword")
	user := &entity.User{ID: "user-1", Password: oldHash, IsActive: true}
	store.On("ConsumeOneTimeToken", mock.Anything, PurposePasswordReset, "tok").Return("user-1", nil)
	repo.On("GetByID", "user-1").Return(user, nil)
	repo.On("Update", mock.MatchedBy(func(u *entity.User) bool {
		return u.Password != oldHash && bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpassword")) == nil
	})).Return(nil)

	err := uc.ConfirmPasswordReset(context.Background(), "tok", "newpassword")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	repo := new(MockUserRepository)
	store := new(MockTokenStore)
	uc := newTestUseCase(repo, store)

	profile := &entity.Profile{ID: "profile-1", UserID: "user-1", Title: "Old title", Location: "Nowhere"}
	repo.On("GetProfileByUserID", "user-1").Return(profile, nil)
	repo.On("UpdateProfile", mock.Anything).Return(nil)

	newTitle := "New title"
	got, err := uc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, "Nowhere", got.Location)
}
