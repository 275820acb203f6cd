package handler

import (
	"errors"
	"net/http"
	"time"

	"jebella-admin/internal/middleware"
	"jebella-admin/internal/model"
	"jebella-admin/pkg/database"
	"jebella-admin/pkg/jwtutil"
	"jebella-admin/pkg/logger"
	"jebella-admin/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login authenticates an account and issues a JWT session token.
// Soft-deleted and suspended accounts are rejected even with valid
// credentials; invited accounts sign in with their temporary password.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			log.Error("Failed to query user", zap.Error(result.Error))
		}
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Status and soft-delete gate
	if !user.CanLogin() {
		log.Warn("Login rejected for inactive account",
			zap.String("email", req.Email),
			zap.String("status", user.Status),
			zap.Bool("is_deleted", user.IsDeleted))
		prometheus.RecordAuthError("account_inactive")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not active"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":        user.ID,
			"email":     user.Email,
			"full_name": user.FullName,
			"role":      user.Role,
		},
	})
}

// Me returns the account behind the current session
func Me(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var user model.User
	result := database.GetDB().First(&user, userID)
	if result.Error != nil {
		log.Warn("Session user not found", zap.Uint("user_id", userID))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session account not found"})
	}
	if !user.CanLogin() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is not active"})
	}

	return c.JSON(http.StatusOK, user)
}

// Logout ends the session. Tokens are stateless, so the server only
// acknowledges; the client discards the token.
func Logout(c echo.Context) error {
	log := logger.FromContext(c)

	if email, ok := c.Get("email").(string); ok {
		log.Info("User logged out", zap.String("email", email))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// InviteSeller creates a seller account in invited status with a
// generated temporary password and "sends" the invite email. Admin only.
func InviteSeller(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("seller", "invite")

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invite request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	tempPassword := uuid.New().String()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash temporary password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invite failed"})
	}

	seller := model.User{
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     model.RoleSeller,
		Status:   model.StatusInvited,
	}

	if err := sellerService().Create(&seller); err != nil {
		log.Warn("Failed to create invited seller", zap.String("email", req.Email), zap.Error(err))
		return crudError(c, log, "seller", err)
	}

	// Simulated email delivery; a mail provider would slot in here
	log.Info("Seller invite email sent",
		zap.String("to", seller.Email),
		zap.String("subject", "You have been invited to the Jebella back office"),
		zap.String("temporary_password", tempPassword))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Invitation sent",
		"seller": map[string]interface{}{
			"id":     seller.ID,
			"email":  seller.Email,
			"status": seller.Status,
		},
	})
}

// UpdatePassword changes the current account's password after verifying
// the existing one. An invited account becomes active on first change.
func UpdatePassword(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse password change request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_password is required"})
	}

	var user model.User
	result := database.GetDB().First(&user, userID)
	if result.Error != nil {
		log.Warn("Session user not found", zap.Uint("user_id", userID))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session account not found"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		log.Warn("Password change rejected", zap.Uint("user_id", userID))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "current password is incorrect"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	updates := map[string]interface{}{"password": string(hashed)}
	if user.Status == model.StatusInvited {
		updates["status"] = model.StatusActive
	}

	if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
		log.Error("Failed to update password", zap.Uint("user_id", userID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password change failed"})
	}

	log.Info("Password updated", zap.Uint("user_id", userID))
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
