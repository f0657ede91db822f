package usecase

import (
	"context"
	"fmt"
	"time"

	"streamlane/pkg/apperr"
	"streamlane/pkg/jwt"
	"streamlane/pkg/logger"
	"streamlane/pkg/queue"
	"streamlane/services/account/internal/entity"
	"streamlane/services/account/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ProfileUpdate struct {
	Title       *string
	Image       *string
	Description *string
	Location    *string
}

type AccountUseCase interface {
	Register(ctx context.Context, email, username, password string) error
	VerifyEmail(ctx context.Context, userID, token string) (alreadyActive bool, err error)
	Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.Profile, error)
}

type accountUseCase struct {
	userRepo    persistent.UserRepository
	tokenStore  TokenStore
	jwtService  *jwt.Service
	queueClient *queue.Client
	baseURL     string
	logger      *logger.Logger
}

func NewAccountUseCase(
	userRepo persistent.UserRepository,
	tokenStore TokenStore,
	jwtService *jwt.Service,
	queueClient *queue.Client,
	baseURL string,
	logger *logger.Logger,
) AccountUseCase {
	return &accountUseCase{
		userRepo:    userRepo,
		tokenStore:  tokenStore,
		jwtService:  jwtService,
		queueClient: queueClient,
		baseURL:     baseURL,
		logger:      logger,
	}
}

func (uc *accountUseCase) Register(ctx context.Context, email, username, password string) error {
	exists, err := uc.userRepo.EmailExists(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if exists {
		return apperr.Conflict("email already registered")
	}

	// Username is optional; uniqueness only applies to non-empty values.
	if username != "" {
		exists, err = uc.userRepo.UsernameExists(username)
		if err != nil {
			return apperr.Internal(err)
		}
		if exists {
			return apperr.Conflict("username already taken")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Role:     entity.RoleUser,
		IsActive: false,
	}

	if err := uc.userRepo.Create(user); err != nil {
		return apperr.Internal(err)
	}

	token := uuid.New().String()
	if err := uc.tokenStore.SaveOneTimeToken(ctx, PurposeVerifyEmail, token, user.ID, verifyTokenTTL); err != nil {
		return apperr.Internal(err)
	}

	uc.dispatchMail(queue.MailTask{
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hi %s,\nPlease click the link below to verify your email:\n%s/account/verify-email?uid=%s&token=%s",
			user.Username, uc.baseURL, user.ID, token),
		Recipient: user.Email,
	})

	return nil
}

func (uc *accountUseCase) VerifyEmail(ctx context.Context, userID, token string) (bool, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return false, apperr.NotFound("user")
		}
		return false, apperr.Internal(err)
	}

	if user.IsActive {
		return true, nil
	}

	// Peek before consuming: a token presented with the wrong uid stays
	// usable for its real owner.
	storedUserID, err := uc.tokenStore.PeekOneTimeToken(ctx, PurposeVerifyEmail, token)
	if err != nil {
		return false, apperr.Internal(err)
	}
	if storedUserID == "" || storedUserID != userID {
		return false, apperr.Validation("invalid or expired token")
	}
	if _, err := uc.tokenStore.ConsumeOneTimeToken(ctx, PurposeVerifyEmail, token); err != nil {
		return false, apperr.Internal(err)
	}

	user.IsActive = true
	if err := uc.userRepo.Update(user); err != nil {
		return false, apperr.Internal(err)
	}

	return false, nil
}

func (uc *accountUseCase) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperr.Unauthenticated("invalid credentials")
	}

	if !user.IsActive {
		return nil, nil, apperr.Forbidden("account is not verified")
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	refreshToken, err := uc.jwtService.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Warn("Failed to record last login for user %s: %v", user.ID, err)
	}

	user.Password = ""
	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (uc *accountUseCase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return apperr.Unauthenticated("invalid refresh token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := uc.tokenStore.RevokeRefreshToken(ctx, claims.ID, ttl); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (uc *accountUseCase) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := uc.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperr.Unauthenticated("invalid refresh token")
	}

	revoked, err := uc.tokenStore.IsRefreshTokenRevoked(ctx, claims.ID)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if revoked {
		return "", apperr.Unauthenticated("refresh token has been revoked")
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return accessToken, nil
}

// RequestPasswordReset never reveals whether the email is registered; unknown
// addresses succeed silently.
func (uc *accountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if persistent.IsNotFound(err) {
			uc.logger.Info("Password reset requested for unknown email")
			return nil
		}
		return apperr.Internal(err)
	}

	token := uuid.New().String()
	if err := uc.tokenStore.SaveOneTimeToken(ctx, PurposePasswordReset, token, user.ID, resetTokenTTL); err != nil {
		return apperr.Internal(err)
	}

	uc.dispatchMail(queue.MailTask{
		Subject: "Password Reset Request",
		Body: fmt.Sprintf("Hi %s,\nPlease click the link below to reset your password:\n%s/account/password-reset-confirm?token=%s",
			user.Username, uc.baseURL, token),
		Recipient: user.Email,
	})

	return nil
}

func (uc *accountUseCase) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := uc.tokenStore.ConsumeOneTimeToken(ctx, PurposePasswordReset, token)
	if err != nil {
		return apperr.Internal(err)
	}
	if userID == "" {
		return apperr.Validation("invalid or expired token")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return apperr.NotFound("user")
		}
		return apperr.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	user.Password = string(hashedPassword)
	if err := uc.userRepo.Update(user); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (uc *accountUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.Internal(err)
	}
	user.Password = ""
	return user, nil
}

func (uc *accountUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	profile, err := uc.userRepo.GetProfileByUserID(userID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("profile")
		}
		return nil, apperr.Internal(err)
	}
	return profile, nil
}

func (uc *accountUseCase) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.Profile, error) {
	profile, err := uc.userRepo.GetProfileByUserID(userID)
	if err != nil {
		if persistent.IsNotFound(err) {
			return nil, apperr.NotFound("profile")
		}
		return nil, apperr.Internal(err)
	}

	if update.Title != nil {
		profile.Title = *update.Title
	}
	if update.Image != nil {
		profile.Image = *update.Image
	}
	if update.Description != nil {
		profile.Description = *update.Description
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}

	if err := uc.userRepo.UpdateProfile(profile); err != nil {
		return nil, apperr.Internal(err)
	}
	return profile, nil
}

func (uc *accountUseCase) dispatchMail(task queue.MailTask) {
	if uc.queueClient == nil {
		uc.logger.Warn("Mail queue unavailable, dropping mail task for %s", task.Recipient)
		return
	}
	go func() {
		if err := uc.queueClient.PublishMailTask(task); err != nil {
			uc.logger.Error("[MAIL QUEUE] Failed to publish mail task: %v", err)
		}
	}()
}
