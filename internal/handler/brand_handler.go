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
)

// BrandRequest defines the structure for brand creation/update requests
type BrandRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

func brandService() *crud.Service[model.Brand] {
	return crud.NewService(database.GetDB(), crud.Config[model.Brand]{
		NameColumn: "name",
		OrderBy:    "created_at DESC",
		Name:       func(b *model.Brand) string { return b.Name },
		Normalize:  (*model.Brand).Normalize,
		Validate:   (*model.Brand).Validate,
		PreCheck:   true,
	})
}

// ListBrands retrieves one page of active brands with optional search
func ListBrands(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("brand", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "brand", err)
	}

	result, err := brandService().List(page, search)
	if err != nil {
		return crudError(c, log, "brand", err)
	}

	log.Info("Brands retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetBrand retrieves a single brand by ID, including soft-deleted rows
func GetBrand(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	brand, err := brandService().Get(id)
	if err != nil {
		log.Warn("Brand not found", zap.Uint("brand_id", id))
		return crudError(c, log, "brand", err)
	}
	return c.JSON(http.StatusOK, brand)
}

// CreateBrand adds a new brand
func CreateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new brand")
	prometheus.RecordEntityOperation("brand", "create")

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	brand := model.Brand{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}

	if err := brandService().Create(&brand); err != nil {
		log.Warn("Failed to create brand", zap.String("name", req.Name), zap.Error(err))
		return crudError(c, log, "brand", err)
	}

	log.Info("Brand created successfully",
		zap.Uint("brand_id", brand.ID),
		zap.String("name", brand.Name))
	notify.Push(notify.KindSuccess, "Brand created successfully")
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand updates an existing brand
func UpdateBrand(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("brand", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("brand_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := brandService()
	brand, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Brand not found for update", zap.Uint("brand_id", id))
		return crudError(c, log, "brand", err)
	}

	brand.Name = req.Name
	brand.Description = req.Description
	brand.LogoURL = req.LogoURL

	if err := svc.Update(id, brand); err != nil {
		log.Warn("Failed to update brand", zap.Uint("brand_id", id), zap.Error(err))
		return crudError(c, log, "brand", err)
	}

	log.Info("Brand updated successfully",
		zap.Uint("brand_id", brand.ID),
		zap.String("name", brand.Name))
	notify.Push(notify.KindSuccess, "Brand updated successfully")
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand soft-deletes a brand after explicit confirmation
func DeleteBrand(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("brand", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid brand id"})
	}

	if !requireConfirmation(c, log, "brands:delete:"+c.Param("id"), "Delete this brand?") {
		return nil
	}

	if err := brandService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete brand", zap.Uint("brand_id", id), zap.Error(err))
		return crudError(c, log, "brand", err)
	}

	log.Info("Brand deleted successfully", zap.Uint("brand_id", id))
	notify.Push(notify.KindSuccess, "Brand deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Brand deleted successfully"})
}
