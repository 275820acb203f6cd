package handler

import (
	"net/http"

	"jebella-admin/internal/notify"

	"github.com/labstack/echo/v4"
)

// ListNotifications returns the notifications that have not expired yet
func ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notify.Active(),
	})
}

// DismissNotification removes a notification before its timer fires
func DismissNotification(c echo.Context) error {
	if !notify.Dismiss(c.Param("id")) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "dismissed"})
}
