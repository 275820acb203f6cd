package handler

import (
	"errors"
	"net/http"
	"strconv"

	"jebella-admin/internal/confirm"
	"jebella-admin/internal/crud"
	"jebella-admin/internal/notify"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// listParams extracts the page number and search query from a list request.
// A missing page defaults to 1; a malformed or sub-1 page is rejected here
// so no row query is ever issued for it.
func listParams(c echo.Context) (int, string, error) {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, "", crud.ErrInvalidPage
		}
		page = parsed
	}
	return page, c.QueryParam("q"), nil
}

// pathID parses the :id route parameter
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// crudError maps a crud service error to the HTTP response and, for
// conflicts and backend failures, raises an operator notification. The
// underlying error is never swallowed: it is either in the response body
// or logged with a generic body.
func crudError(c echo.Context, log *zap.Logger, entity string, err error) error {
	var ve *crud.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Reason})
	case errors.Is(err, crud.ErrConflict):
		notify.Push(notify.KindError, entity+" with this name already exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " with this name already exists"})
	case errors.Is(err, crud.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.Is(err, crud.ErrInvalidPage):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "page out of range"})
	default:
		log.Error("Unexpected "+entity+" operation failure", zap.Error(err))
		notify.Push(notify.KindError, "Failed to save "+entity+": "+err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

// requireConfirmation implements the two-step destructive action flow.
// Without a valid token it responds 409 carrying a fresh single-use token
// bound to the action and returns false; the caller then returns nil.
func requireConfirmation(c echo.Context, log *zap.Logger, action, message string) bool {
	token := c.QueryParam("confirm_token")
	if token != "" && confirm.Confirm(action, token) {
		return true
	}
	if token != "" {
		log.Warn("Stale or invalid confirmation token", zap.String("action", action))
	}

	_ = c.JSON(http.StatusConflict, echo.Map{
		"confirmation_required": true,
		"confirm_token":         confirm.Issue(action),
		"message":               message,
	})
	return false
}
