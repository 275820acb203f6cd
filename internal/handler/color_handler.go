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

// ColorRequest defines the structure for color creation/update requests
type ColorRequest struct {
	Name         string `json:"name" validate:"required"`
	HexCode      string `json:"hex_code" validate:"required"`
	Category     string `json:"category" validate:"required"`
	DisplayOrder int    `json:"display_order"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

func colorService() *crud.Service[model.Color] {
	return crud.NewService(database.GetDB(), crud.Config[model.Color]{
		NameColumn: "name",
		OrderBy:    "category ASC, display_order ASC",
		Name:       func(col *model.Color) string { return col.Name },
		Scope: func(col *model.Color) map[string]interface{} {
			return map[string]interface{}{"category": col.Category}
		},
		Normalize: (*model.Color).Normalize,
		Validate:  (*model.Color).Validate,
		PreCheck:  true,
	})
}

func (r *ColorRequest) toModel() model.Color {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.Color{
		Name:         r.Name,
		HexCode:      r.HexCode,
		Category:     model.ColorCategory(r.Category),
		DisplayOrder: r.DisplayOrder,
		Description:  r.Description,
		IsActive:     active,
	}
}

// ListColors retrieves one page of active colors with optional search,
// ordered by category then display order
func ListColors(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("color", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "color", err)
	}

	result, err := colorService().List(page, search)
	if err != nil {
		return crudError(c, log, "color", err)
	}

	log.Info("Colors retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetColor retrieves a single color by ID, including soft-deleted rows
func GetColor(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid color id"})
	}

	color, err := colorService().Get(id)
	if err != nil {
		log.Warn("Color not found", zap.Uint("color_id", id))
		return crudError(c, log, "color", err)
	}
	return c.JSON(http.StatusOK, color)
}

// CreateColor adds a new color. The name must be unique within the
// color's category, so the same name may recur across categories.
func CreateColor(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new color")
	prometheus.RecordEntityOperation("color", "create")

	var req ColorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	color := req.toModel()

	if err := colorService().Create(&color); err != nil {
		log.Warn("Failed to create color",
			zap.String("name", req.Name),
			zap.String("category", req.Category),
			zap.Error(err))
		return crudError(c, log, "color", err)
	}

	log.Info("Color created successfully",
		zap.Uint("color_id", color.ID),
		zap.String("name", color.Name),
		zap.String("hex_code", color.HexCode),
		zap.String("category", string(color.Category)))
	notify.Push(notify.KindSuccess, "Color created successfully")
	return c.JSON(http.StatusCreated, color)
}

// UpdateColor updates an existing color
func UpdateColor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("color", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid color id"})
	}

	var req ColorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("color_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := colorService()
	color, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Color not found for update", zap.Uint("color_id", id))
		return crudError(c, log, "color", err)
	}

	updated := req.toModel()
	updated.ID = color.ID
	updated.CreatedAt = color.CreatedAt
	updated.IsDeleted = color.IsDeleted

	if err := svc.Update(id, &updated); err != nil {
		log.Warn("Failed to update color", zap.Uint("color_id", id), zap.Error(err))
		return crudError(c, log, "color", err)
	}

	log.Info("Color updated successfully",
		zap.Uint("color_id", updated.ID),
		zap.String("name", updated.Name))
	notify.Push(notify.KindSuccess, "Color updated successfully")
	return c.JSON(http.StatusOK, updated)
}

// DeleteColor soft-deletes a color after explicit confirmation
func DeleteColor(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("color", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid color id"})
	}

	if !requireConfirmation(c, log, "colors:delete:"+c.Param("id"), "Delete this color?") {
		return nil
	}

	if err := colorService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete color", zap.Uint("color_id", id), zap.Error(err))
		return crudError(c, log, "color", err)
	}

	log.Info("Color deleted successfully", zap.Uint("color_id", id))
	notify.Push(notify.KindSuccess, "Color deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Color deleted successfully"})
}
