package handler

import (
	"errors"
	"net/http"

	"jebella-admin/internal/storage"
	"jebella-admin/pkg/logger"
	"jebella-admin/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var store *storage.Store

// SetStore installs the object store used by the upload handlers
func SetStore(s *storage.Store) {
	store = s
}

// UploadImage stores one image file into the named bucket. The optional
// "tag" form field is echoed back so a page with several pickers can tell
// which one the response belongs to.
func UploadImage(c echo.Context) error {
	log := logger.FromContext(c)
	bucket := c.Param("bucket")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		log.Warn("Upload request without file", zap.String("bucket", bucket))
		prometheus.RecordUpload(bucket, "invalid")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	tag := c.FormValue("tag")

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", zap.Error(err))
		prometheus.RecordUpload(bucket, "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read upload"})
	}
	defer src.Close()

	object, err := store.SaveImage(bucket, fileHeader.Filename, src)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		log.Warn("Rejected non-image upload",
			zap.String("bucket", bucket),
			zap.String("filename", fileHeader.Filename))
		prometheus.RecordUpload(bucket, "rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image files are allowed"})
	case errors.Is(err, storage.ErrTooLarge):
		log.Warn("Rejected oversized upload",
			zap.String("bucket", bucket),
			zap.Int64("size", fileHeader.Size))
		prometheus.RecordUpload(bucket, "rejected")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file exceeds the maximum allowed size"})
	case err != nil:
		log.Error("Failed to store upload", zap.String("bucket", bucket), zap.Error(err))
		prometheus.RecordUpload(bucket, "error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to store file"})
	}

	log.Info("Image uploaded",
		zap.String("bucket", object.Bucket),
		zap.String("name", object.Name),
		zap.Int64("size", object.Size))
	prometheus.RecordUpload(bucket, "stored")
	return c.JSON(http.StatusCreated, echo.Map{
		"bucket": object.Bucket,
		"name":   object.Name,
		"url":    object.URL,
		"size":   object.Size,
		"tag":    tag,
	})
}

// RemoveImage deletes a stored image, releasing its public URL
func RemoveImage(c echo.Context) error {
	log := logger.FromContext(c)
	bucket := c.Param("bucket")
	name := c.Param("name")

	if err := store.Remove(bucket, name); err != nil {
		log.Error("Failed to remove stored image",
			zap.String("bucket", bucket),
			zap.String("name", name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to remove file"})
	}

	log.Info("Image removed", zap.String("bucket", bucket), zap.String("name", name))
	return c.JSON(http.StatusOK, echo.Map{"message": "file removed"})
}
