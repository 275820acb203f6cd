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

// AudienceRequest defines the structure for audience creation/update requests
type AudienceRequest struct {
	Name string `json:"name" validate:"required"`
}

func audienceService() *crud.Service[model.Audience] {
	return crud.NewService(database.GetDB(), crud.Config[model.Audience]{
		NameColumn: "name",
		OrderBy:    "created_at DESC",
		Name:       func(a *model.Audience) string { return a.Name },
		Normalize:  (*model.Audience).Normalize,
		Validate:   (*model.Audience).Validate,
		PreCheck:   true,
	})
}

// ListAudiences retrieves one page of active audiences with optional search
func ListAudiences(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("audience", "list")

	page, search, err := listParams(c)
	if err != nil {
		return crudError(c, log, "audience", err)
	}

	result, err := audienceService().List(page, search)
	if err != nil {
		return crudError(c, log, "audience", err)
	}

	log.Info("Audiences retrieved successfully",
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetAudience retrieves a single audience by ID, including soft-deleted rows
func GetAudience(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid audience id"})
	}

	audience, err := audienceService().Get(id)
	if err != nil {
		log.Warn("Audience not found", zap.Uint("audience_id", id))
		return crudError(c, log, "audience", err)
	}
	return c.JSON(http.StatusOK, audience)
}

// CreateAudience adds a new audience
func CreateAudience(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new audience")
	prometheus.RecordEntityOperation("audience", "create")

	var req AudienceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	audience := model.Audience{Name: req.Name}

	if err := audienceService().Create(&audience); err != nil {
		log.Warn("Failed to create audience", zap.String("name", req.Name), zap.Error(err))
		return crudError(c, log, "audience", err)
	}

	log.Info("Audience created successfully",
		zap.Uint("audience_id", audience.ID),
		zap.String("name", audience.Name))
	notify.Push(notify.KindSuccess, "Audience created successfully")
	return c.JSON(http.StatusCreated, audience)
}

// UpdateAudience updates an existing audience
func UpdateAudience(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("audience", "update")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid audience id"})
	}

	var req AudienceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("audience_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	svc := audienceService()
	audience, err := svc.GetActive(id)
	if err != nil {
		log.Warn("Audience not found for update", zap.Uint("audience_id", id))
		return crudError(c, log, "audience", err)
	}

	audience.Name = req.Name

	if err := svc.Update(id, audience); err != nil {
		log.Warn("Failed to update audience", zap.Uint("audience_id", id), zap.Error(err))
		return crudError(c, log, "audience", err)
	}

	log.Info("Audience updated successfully",
		zap.Uint("audience_id", audience.ID),
		zap.String("name", audience.Name))
	notify.Push(notify.KindSuccess, "Audience updated successfully")
	return c.JSON(http.StatusOK, audience)
}

// DeleteAudience soft-deletes an audience after explicit confirmation
func DeleteAudience(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("audience", "delete")

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid audience id"})
	}

	if !requireConfirmation(c, log, "audiences:delete:"+c.Param("id"), "Delete this audience?") {
		return nil
	}

	if err := audienceService().SoftDelete(id); err != nil {
		log.Warn("Failed to delete audience", zap.Uint("audience_id", id), zap.Error(err))
		return crudError(c, log, "audience", err)
	}

	log.Info("Audience deleted successfully", zap.Uint("audience_id", id))
	notify.Push(notify.KindSuccess, "Audience deleted successfully")
	return c.JSON(http.StatusOK, echo.Map{"message": "Audience deleted successfully"})
}
