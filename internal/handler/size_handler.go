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

// SizeRequest defines the structure for size creation/update requests
type SizeRequest struct {
	Label        string   `json:"label" validate:"required"`
	SizeType     string   `json:"size_type" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	NumericValue *float64 `json:"numeric_value"`
	DisplayOrder int      `json:"display_order"`
	Description  string   `json:"description"`
	IsActive     *bool    `json:"is_active"`
}

func sizeService() *crud.Service[model.Size] {
	return crud.NewService(database.GetDB(), crud.Config[model.Size]{
		NameColumn: "label",
		OrderBy:    "category ASC, display_order ASC",
		Name:       func(s *model.Size) string { return s.Label },
		Scope: func(s *model.Size) map[string]interface{} {
			return map[string]interface{}{"category": s.Category}
		},
		Normalize: (*model.Size).Normalize,
		Validate:  (*model.Size).Validate,
		PreCheck:  true,
	})
}

func (r *SizeRequest) toModel() model.Size {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.Size{
		Label:        r.Label,
		SizeType:     model.SizeType(r.SizeType),
		Category:     model.SizeCategory(r.Category),
		NumericValue: r.NumericValue,
		DisplayOrder: r.DisplayOrder,
		Description:  r.Description,
		IsActive:     active,
	}
}

// ListSizes retrieves one page of active sizes with optional search,
// ordered by category then display order
func ListSizes(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("size", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "size", err)
	}

	result, err := sizeService().List(page, search)
	if err != nil {
		return crudError(c, log, "size", err)
	}

	log.Info("Sizes retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetSize retrieves a single size by ID, including soft-deleted rows
func GetSize(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size id"})
	}

	size, err := sizeService().Get(id)
	if err != nil {
		log.Warn("Size not found", zap.Uint("size_id", id))
		return crudError(c, log, "size", err)
	}
	return c.JSON(http.StatusOK, size)
}

// CreateSize adds a new size. Numeric sizes must carry a numeric value;
// the label must be unique within the size's category.
func CreateSize(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new size")
	prometheus.RecordEntityOperation("size", "create")

	var req SizeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	size := req.toModel()

	if err := sizeService().Create(&size); err != nil {
		log.Warn("Failed to create size",
			zap.String("label", req.Label),
			zap.String("category", req.Category),
			zap.Error(err))
		return crudError(c, log, "size", err)
	}

	log.Info("Size created successfully",
		zap.Uint("size_id", size.ID),
		zap.String("label", size.Label),
		zap.String("size_type", string(size.SizeType)),
		zap.String("category", string(size.Category)))
	notify.Push(notify.KindSuccess, "Size created successfully")
	return c.JSON(http.StatusCreated, size)
}

// UpdateSize updates an existing size
func UpdateSize(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("size", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size id"})
	}

	var req SizeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("size_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := sizeService()
	size, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Size not found for update", zap.Uint("size_id", id))
		return crudError(c, log, "size", err)
	}

	updated := req.toModel()
	updated.ID = size.ID
	updated.CreatedAt = size.CreatedAt
	updated.IsDeleted = size.IsDeleted

	if err := svc.Update(id, &updated); err != nil {
		log.Warn("Failed to update size", zap.Uint("size_id", id), zap.Error(err))
		return crudError(c, log, "size", err)
	}

	log.Info("Size updated successfully",
		zap.Uint("size_id", updated.ID),
		zap.String("label", updated.Label))
	notify.Push(notify.KindSuccess, "Size updated successfully")
	return c.JSON(http.StatusOK, updated)
}

// DeleteSize soft-deletes a size after explicit confirmation
func DeleteSize(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("size", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size id"})
	}

	if !requireConfirmation(c, log, "sizes:delete:"+c.Param("id"), "Delete this size?") {
		return nil
	}

	if err := sizeService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete size", zap.Uint("size_id", id), zap.Error(err))
		return crudError(c, log, "size", err)
	}

	log.Info("Size deleted successfully", zap.Uint("size_id", id))
	notify.Push(notify.KindSuccess, "Size deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Size deleted successfully"})
}
