package handler

import (
	"net/http"

	"jebella-admin/internal/crud"
	"jebella-admin/internal/model"
	"jebella-admin/internal/notify"
	"jebella-admin/pkg/database"
	"jebella-admin/pkg/logger"
	"jebella-admin/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SellerRequest defines the structure for seller creation/update requests
type SellerRequest struct {
	Email    string `json:"email" validate:"required"`
	FullName string `json:"full_name"`
	Password string `json:"password,omitempty"`
	Status   string `json:"status"`
}

func sellerService() *crud.Service[model.User] {
	return crud.NewService(database.GetDB(), crud.Config[model.User]{
		NameColumn: "email",
		OrderBy:    "created_at DESC",
		Name:       func(u *model.User) string { return u.Email },
		Filter:     map[string]interface{}{"role": string(model.RoleSeller)},
		Normalize:  (*model.User).Normalize,
		Validate:   (*model.User).Validate,
		PreCheck:   true,
	})
}

// ListSellers retrieves one page of active seller accounts with optional
// search by email
func ListSellers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("seller", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "seller", err)
	}

	result, err := sellerService().List(page, search)
	if err != nil {
		return crudError(c, log, "seller", err)
	}

	log.Info("Sellers retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetSeller retrieves a single seller by ID, including soft-deleted rows
func GetSeller(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}

	seller, err := sellerService().Get(id)
	if err != nil {
		log.Warn("Seller not found", zap.Uint("seller_id", id))
		return crudError(c, log, "seller", err)
	}
	return c.JSON(http.StatusOK, seller)
}

// CreateSeller adds a new seller account with a hashed password
func CreateSeller(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new seller")
	prometheus.RecordEntityOperation("seller", "create")

	var req SellerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seller"})
	}

	status := req.Status
	if status == "" {
		status = model.StatusActive
	}

	seller := model.User{
		Email:    req.Email,
		Password: string(hashed),
		FullName: req.FullName,
		Role:     model.RoleSeller,
		Status:   status,
	}

	if err := sellerService().Create(&seller); err != nil {
		log.Warn("Failed to create seller", zap.String("email", req.Email), zap.Error(err))
		return crudError(c, log, "seller", err)
	}

	log.Info("Seller created successfully",
		zap.Uint("seller_id", seller.ID),
		zap.String("email", seller.Email))
	notify.Push(notify.KindSuccess, "Seller created successfully")
	return c.JSON(http.StatusCreated, seller)
}

// UpdateSeller updates an existing seller account. The password changes
// only when the request carries a new one.
func UpdateSeller(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("seller", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}

	var req SellerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("seller_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := sellerService()
	seller, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Seller not found for update", zap.Uint("seller_id", id))
		return crudError(c, log, "seller", err)
	}

	seller.Email = req.Email
	seller.FullName = req.FullName
	if req.Status != "" {
		seller.Status = req.Status
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seller"})
		}
		seller.Password = string(hashed)
	}

	if err := svc.Update(id, seller); err != nil {
		log.Warn("Failed to update seller", zap.Uint("seller_id", id), zap.Error(err))
		return crudError(c, log, "seller", err)
	}

	log.Info("Seller updated successfully",
		zap.Uint("seller_id", seller.ID),
		zap.String("email", seller.Email))
	notify.Push(notify.KindSuccess, "Seller updated successfully")
	return c.JSON(http.StatusOK, seller)
}

// DeleteSeller soft-deletes a seller account after explicit confirmation
func DeleteSeller(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("seller", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seller id"})
	}

	if !requireConfirmation(c, log, "sellers:delete:"+c.Param("id"), "Delete this seller account?") {
		return nil
	}

	if err := sellerService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete seller", zap.Uint("seller_id", id), zap.Error(err))
		return crudError(c, log, "seller", err)
	}

	log.Info("Seller deleted successfully", zap.Uint("seller_id", id))
	notify.Push(notify.KindSuccess, "Seller deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Seller deleted successfully"})
}
