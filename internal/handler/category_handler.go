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

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func categoryService() *crud.Service[model.Category] {
	return crud.NewService(database.GetDB(), crud.Config[model.Category]{
		NameColumn: "name",
		OrderBy:    "created_at DESC",
		Name:       func(cat *model.Category) string { return cat.Name },
		Normalize:  (*model.Category).Normalize,
		Validate:   (*model.Category).Validate,
		PreCheck:   true,
	})
}

// ListCategories retrieves one page of active categories with optional search
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "category", err)
	}

	result, err := categoryService().List(page, search)
	if err != nil {
		return crudError(c, log, "category", err)
	}

	log.Info("Categories retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetCategory retrieves a single category by ID, including soft-deleted rows
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := categoryService().Get(id)
	if err != nil {
		log.Warn("Category not found", zap.Uint("category_id", id))
		return crudError(c, log, "category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")
	prometheus.RecordEntityOperation("category", "create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category := model.Category{Name: req.Name}

	if err := categoryService().Create(&category); err != nil {
		log.Warn("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return crudError(c, log, "category", err)
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	notify.Push(notify.KindSuccess, "Category created successfully")
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := categoryService()
	category, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Category not found for update", zap.Uint("category_id", id))
		return crudError(c, log, "category", err)
	}

	category.Name = req.Name

	if err := svc.Update(id, category); err != nil {
		log.Warn("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return crudError(c, log, "category", err)
	}

	log.Info("Category updated successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	notify.Push(notify.KindSuccess, "Category updated successfully")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory soft-deletes a category after explicit confirmation.
// A category still referenced by live subcategories cannot be deleted.
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("category", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	if !requireConfirmation(c, log, "categories:delete:"+c.Param("id"), "Delete this category?") {
		return nil
	}

	// Check if any active subcategories still reference this category
	var count int64
	if err := database.GetDB().Model(&model.Subcategory{}).
		Where("category_id = ? AND is_deleted = ?", id, false).
		Count(&count).Error; err != nil {
		return crudError(c, log, "category", err)
	}
	if count > 0 {
		log.Warn("Cannot delete category that is being used by subcategories",
			zap.Uint("category_id", id),
			zap.Int64("subcategory_count", count))
		notify.Push(notify.KindError, "Cannot delete a category that still has subcategories")
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Cannot delete category that is being used by subcategories",
		})
	}

	if err := categoryService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return crudError(c, log, "category", err)
	}

	log.Info("Category deleted successfully", zap.Uint("category_id", id))
	notify.Push(notify.KindSuccess, "Category deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
