package handler

import (
	"net/http"
	"testing"

	"jebella-admin/internal/middleware"
	"jebella-admin/internal/model"
	"jebella-admin/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginSuccess(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	seedUser(t, db, "admin@example.com", "letmein", model.RoleAdmin, model.StatusActive, false)

	c, rec := request(t, e, http.MethodPost, "/api/auth/login", echo.Map{
		"email":    "admin@example.com",
		"password": "letmein",
	})
	if err := Login(c); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	claims, err := jwtutil.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Role != string(model.RoleAdmin) || claims.Email != "admin@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if resp.User.Role != string(model.RoleAdmin) {
		t.Errorf("unexpected user payload role %q", resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	seedUser(t, db, "admin@example.com", "letmein", model.RoleAdmin, model.StatusActive, false)

	c, rec := request(t, e, http.MethodPost, "/api/auth/login", echo.Map{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	if err := Login(c); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	setupDB(t)
	e := echo.New()

	c, rec := request(t, e, http.MethodPost, "/api/auth/login", echo.Map{
		"email":    "nobody@example.com",
		"password": "letmein",
	})
	if err := Login(c); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// Valid credentials are not enough: suspended and soft-deleted accounts
// are turned away after the password check.
func TestLoginRejectsInactiveAccounts(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	seedUser(t, db, "suspended@example.com", "letmein", model.RoleSeller, model.StatusSuspended, false)
	seedUser(t, db, "deleted@example.com", "letmein", model.RoleSeller, model.StatusActive, true)

	for _, email := range []string{"suspended@example.com", "deleted@example.com"} {
		c, rec := request(t, e, http.MethodPost, "/api/auth/login", echo.Map{
			"email":    email,
			"password": "letmein",
		})
		if err := Login(c); err != nil {
			t.Fatalf("login returned error: %v", err)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s: expected 403, got %d", email, rec.Code)
		}
	}
}

func TestUpdatePasswordActivatesInvitedAccount(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	user := seedUser(t, db, "invited@example.com", "temp-pass", model.RoleSeller, model.StatusInvited, false)

	c, rec := request(t, e, http.MethodPost, "/api/auth/password", echo.Map{
		"current_password": "temp-pass",
		"new_password":     "chosen-pass",
	})
	c.Set("user_id", user.ID)

	if err := UpdatePassword(c); err != nil {
		t.Fatalf("password change returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.Status != model.StatusActive {
		t.Errorf("expected invited account to become active, got %q", reloaded.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("chosen-pass")); err != nil {
		t.Error("new password does not verify")
	}
}

func TestUpdatePasswordRejectsWrongCurrent(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	user := seedUser(t, db, "admin@example.com", "letmein", model.RoleAdmin, model.StatusActive, false)

	c, rec := request(t, e, http.MethodPost, "/api/auth/password", echo.Map{
		"current_password": "wrong",
		"new_password":     "chosen-pass",
	})
	c.Set("user_id", user.ID)

	if err := UpdatePassword(c); err != nil {
		t.Fatalf("password change returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestInviteSellerCreatesInvitedAccount(t *testing.T) {
	db := setupDB(t)
	e := echo.New()

	c, rec := request(t, e, http.MethodPost, "/api/auth/invite", echo.Map{
		"email":     "newseller@example.com",
		"full_name": "New Seller",
	})
	if err := InviteSeller(c); err != nil {
		t.Fatalf("invite returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var seller model.User
	if err := db.Where("email = ?", "newseller@example.com").First(&seller).Error; err != nil {
		t.Fatalf("invited seller not stored: %v", err)
	}
	if seller.Role != model.RoleSeller || seller.Status != model.StatusInvited {
		t.Errorf("unexpected invited account: role=%q status=%q", seller.Role, seller.Status)
	}
	if seller.Password == "" {
		t.Error("expected a hashed temporary password")
	}
}

// An invited seller must be able to sign in with the temporary password
// and then claim the account by setting their own.
func TestInvitedSellerLoginAndActivation(t *testing.T) {
	db := setupDB(t)
	e := echo.New()
	user := seedUser(t, db, "invited@example.com", "temp-pass", model.RoleSeller, model.StatusInvited, false)

	c, rec := request(t, e, http.MethodPost, "/api/auth/login", echo.Map{
		"email":    "invited@example.com",
		"password": "temp-pass",
	})
	if err := Login(c); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected invited seller to log in with the temporary password, got %d: %s",
			rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	claims, err := jwtutil.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token issued for user %d, want %d", claims.UserID, user.ID)
	}

	// Setting a password of their own activates the account
	c, rec = request(t, e, http.MethodPost, "/api/auth/password", echo.Map{
		"current_password": "temp-pass",
		"new_password":     "chosen-pass",
	})
	c.Set("user_id", claims.UserID)
	if err := UpdatePassword(c); err != nil {
		t.Fatalf("password change returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.Status != model.StatusActive {
		t.Errorf("expected account to become active, got %q", reloaded.Status)
	}
}

func TestAuthMiddlewareGatesAdminArea(t *testing.T) {
	setupDB(t)
	e := echo.New()

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	protected := middleware.AuthMiddleware(middleware.RequireAdmin(ok))

	// No token
	c, rec := request(t, e, http.MethodGet, "/api/brands", nil)
	if err := protected(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Seller token
	sellerToken, err := jwtutil.GenerateToken("seller@example.com", 2, string(model.RoleSeller))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	c, rec = request(t, e, http.MethodGet, "/api/brands", nil)
	c.Request().Header.Set("Authorization", "Bearer "+sellerToken)
	if err := protected(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for seller role, got %d", rec.Code)
	}

	// Admin token
	adminToken, err := jwtutil.GenerateToken("admin@example.com", 1, string(model.RoleAdmin))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	c, rec = request(t, e, http.MethodGet, "/api/brands", nil)
	c.Request().Header.Set("Authorization", "Bearer "+adminToken)
	if err := protected(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin role, got %d", rec.Code)
	}
}
