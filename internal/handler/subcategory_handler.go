package handler

import (
	"net/http"
	"strconv"

	"jebella-admin/internal/crud"
	"jebella-admin/internal/model"
	"jebella-admin/internal/notify"
	"jebella-admin/pkg/database"
	"jebella-admin/pkg/logger"
	"jebella-admin/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SubcategoryRequest defines the structure for subcategory creation/update requests
type SubcategoryRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

// subcategoryService builds the subcategory CRUD service. A non-zero
// categoryID narrows every operation to that parent category.
func subcategoryService(categoryID uint) *crud.Service[model.Subcategory] {
	cfg := crud.Config[model.Subcategory]{
		NameColumn: "name",
		OrderBy:    "created_at DESC",
		Name:       func(s *model.Subcategory) string { return s.Name },
		Scope: func(s *model.Subcategory) map[string]interface{} {
			return map[string]interface{}{"category_id": s.CategoryID}
		},
		Normalize: (*model.Subcategory).Normalize,
		Validate:  (*model.Subcategory).Validate,
		PreCheck:  true,
	}
	if categoryID != 0 {
		cfg.Filter = map[string]interface{}{"category_id": categoryID}
	}
	return crud.NewService(database.GetDB(), cfg)
}

// categoryExists checks that the referenced parent category is live
func categoryExists(id uint) (bool, error) {
	var count int64
	err := database.GetDB().Model(&model.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// ListSubcategories retrieves one page of active subcategories with optional
// search; an optional category_id query param narrows to one parent category
func ListSubcategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("subcategory", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "subcategory", err)
	}

	var categoryID uint
	if raw := c.QueryParam("category_id"); raw != "" {
		parsed, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil || parsed == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category_id"})
		}
		categoryID = uint(parsed)
	}

	result, err := subcategoryService(categoryID).List(page, search)
	if err != nil {
		return crudError(c, log, "subcategory", err)
	}

	log.Info("Subcategories retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetSubcategory retrieves a single subcategory by ID, including soft-deleted rows
func GetSubcategory(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subcategory id"})
	}

	subcategory, err := subcategoryService(0).Get(id)
	if err != nil {
		log.Warn("Subcategory not found", zap.Uint("subcategory_id", id))
		return crudError(c, log, "subcategory", err)
	}
	return c.JSON(http.StatusOK, subcategory)
}

// CreateSubcategory adds a new subcategory under an existing category
func CreateSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new subcategory")
	prometheus.RecordEntityOperation("subcategory", "create")

	var req SubcategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.CategoryID != 0 {
		exists, err := categoryExists(req.CategoryID)
		if err != nil {
			return crudError(c, log, "subcategory", err)
		}
		if !exists {
			log.Warn("Parent category not found", zap.Uint("category_id", req.CategoryID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category not found"})
		}
	}

	subcategory := model.Subcategory{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	}

	if err := subcategoryService(0).Create(&subcategory); err != nil {
		log.Warn("Failed to create subcategory",
			zap.String("name", req.Name),
			zap.Uint("category_id", req.CategoryID),
			zap.Error(err))
		return crudError(c, log, "subcategory", err)
	}

	log.Info("Subcategory created successfully",
		zap.Uint("subcategory_id", subcategory.ID),
		zap.String("name", subcategory.Name),
		zap.Uint("category_id", subcategory.CategoryID))
	notify.Push(notify.KindSuccess, "Subcategory created successfully")
	return c.JSON(http.StatusCreated, subcategory)
}

// UpdateSubcategory updates an existing subcategory
func UpdateSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("subcategory", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subcategory id"})
	}

	var req SubcategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("subcategory_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.CategoryID != 0 {
		exists, err := categoryExists(req.CategoryID)
		if err != nil {
			return crudError(c, log, "subcategory", err)
		}
		if !exists {
			log.Warn("Parent category not found", zap.Uint("category_id", req.CategoryID))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category not found"})
		}
	}

	svc := subcategoryService(0)
	subcategory, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Subcategory not found for update", zap.Uint("subcategory_id", id))
		return crudError(c, log, "subcategory", err)
	}

	subcategory.Name = req.Name
	subcategory.CategoryID = req.CategoryID

	if err := svc.Update(id, subcategory); err != nil {
		log.Warn("Failed to update subcategory", zap.Uint("subcategory_id", id), zap.Error(err))
		return crudError(c, log, "subcategory", err)
	}

	log.Info("Subcategory updated successfully",
		zap.Uint("subcategory_id", subcategory.ID),
		zap.String("name", subcategory.Name))
	notify.Push(notify.KindSuccess, "Subcategory updated successfully")
	return c.JSON(http.StatusOK, subcategory)
}

// DeleteSubcategory soft-deletes a subcategory after explicit confirmation
func DeleteSubcategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("subcategory", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subcategory id"})
	}

	if !requireConfirmation(c, log, "subcategories:delete:"+c.Param("id"), "Delete this subcategory?") {
		return nil
	}

	if err := subcategoryService(0).SoftDelete(id); err != nil {
		log.Warn("Failed to delete subcategory", zap.Uint("subcategory_id", id), zap.Error(err))
		return crudError(c, log, "subcategory", err)
	}

	log.Info("Subcategory deleted successfully", zap.Uint("subcategory_id", id))
	notify.Push(notify.KindSuccess, "Subcategory deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Subcategory deleted successfully"})
}
