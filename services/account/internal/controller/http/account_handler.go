package http

import (
	"net/http"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/account/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         *logger.Logger
}

func NewAccountHandler(accountUseCase usecase.AccountUseCase, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

func (h *AccountHandler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("account: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ProfileUpdateRequest struct {
	Title       *string `json:"title"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an inactive account and send a verification email
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /account/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountUseCase.Register(c.Request.Context(), req.Email, req.Username, req.Password); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully. Please check your email to verify your account."})
}

// VerifyEmail godoc
// @Summary      Verify a user's email address
// @Tags         account
// @Produce      json
// @Param        uid   query string true "User ID"
// @Param        token query string true "One-time verification token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /account/verify-email [get]
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	uid := c.Query("uid")
	token := c.Query("token")
	if uid == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification link"})
		return
	}

	alreadyActive, err := h.accountUseCase.VerifyEmail(c.Request.Context(), uid, token)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if alreadyActive {
		c.JSON(http.StatusOK, gin.H{"message": "Account already verified."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}

// Login godoc
// @Summary      Login user
// @Description  Authenticate and issue an access/refresh token pair
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /account/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tokens, err := h.accountUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":         user.Email,
		"username":      user.Username,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"last_login":    user.LastLogin,
	})
}

// Logout godoc
// @Summary      Logout user
// @Description  Revoke the presented refresh token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /account/logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	if err := h.accountUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh token"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /account/token/refresh [post]
func (h *AccountHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	accessToken, err := h.accountUseCase.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// PasswordReset godoc
// @Summary      Request a password reset link
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body PasswordResetRequest true "Account email"
// @Success      200  {object}  map[string]string
// @Router       /account/password-reset [post]
func (h *AccountHandler) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountUseCase.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset link has been sent."})
}

// PasswordResetConfirm godoc
// @Summary      Set a new password using a reset token
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body PasswordResetConfirmRequest true "Token and new password"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /account/password-reset-confirm [post]
func (h *AccountHandler) PasswordResetConfirm(c *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountUseCase.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful. You can now log in again."})
}

// Me godoc
// @Summary      Get current user info
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Router       /account/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	user, err := h.accountUseCase.GetUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetProfile godoc
// @Summary      Get the caller's channel profile
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Router       /account/profile/update [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	profile, err := h.accountUseCase.GetProfile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Partially update the caller's channel profile
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProfileUpdateRequest true "Fields to update"
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Router       /account/profile/update [patch]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.accountUseCase.UpdateProfile(c.Request.Context(), c.GetString("user_id"), usecase.ProfileUpdate{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
