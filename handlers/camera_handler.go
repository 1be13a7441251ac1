package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"speed-camera-registry/be/middleware"
	"speed-camera-registry/be/models"
	"speed-camera-registry/be/services"

	"github.com/gin-gonic/gin"
)

type CameraHandler struct {
	service *services.CameraService
	logger  *slog.Logger
}

func NewCameraHandler(service *services.CameraService, logger *slog.Logger) *CameraHandler {
	return &CameraHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CameraHandler) GetCameras(c *gin.Context) {
	page := services.Page{Limit: services.DefaultPageLimit}
	var err error
	if v := c.Query("limit"); v != "" {
		if page.Limit, err = strconv.Atoi(v); err != nil {
			h.respondError(c, &services.ValidationError{Field: "limit", Message: "must be an integer"})
			return
		}
	}
	if v := c.Query("offset"); v != "" {
		if page.Offset, err = strconv.Atoi(v); err != nil {
			h.respondError(c, &services.ValidationError{Field: "offset", Message: "must be an integer"})
			return
		}
	}

	result, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CameraHandler) GetCamera(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	camera, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, camera)
}

func (h *CameraHandler) GetCamerasByZipcode(c *gin.Context) {
	cameras, err := h.service.ListByZipcode(c.Request.Context(), c.Param("zipcode"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cameras)
}

func (h *CameraHandler) SearchCameras(c *gin.Context) {
	cameras, err := h.service.Search(c.Request.Context(), c.Query("street"), c.Query("zipcode"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cameras)
}

func (h *CameraHandler) CreateCamera(c *gin.Context) {
	req, ok := h.bindPatch(c)
	if !ok {
		return
	}

	camera, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, camera)
}

func (h *CameraHandler) UpdateCamera(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	req, ok := h.bindPatch(c)
	if !ok {
		return
	}

	camera, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, camera)
}

func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Camera deleted successfully"})
}

// parseID limits ids to 63 bits, the range of the bigint id column.
func (h *CameraHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	switch {
	case errors.Is(err, strconv.ErrRange):
		h.respondError(c, &services.ValidationError{Field: "id", Message: "is out of range"})
		return 0, false
	case err != nil:
		h.respondError(c, &services.ValidationError{Field: "id", Message: "must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

// bindPatch decodes a camera body. Unknown fields, including id, are ignored.
func (h *CameraHandler) bindPatch(c *gin.Context) (models.CameraPatch, bool) {
	var req models.CameraPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			h.respondError(c, &services.ValidationError{
				Field:   typeErr.Field,
				Message: "must be " + jsonKind(typeErr.Type.Kind().String()),
			})
			return req, false
		}
		h.respondError(c, &services.ValidationError{Field: "body", Message: "must be a valid JSON object"})
		return req, false
	}
	return req, true
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int64", "uint", "uint64":
		return "an integer"
	default:
		return "a " + goKind
	}
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and hidden behind a generic message.
func (h *CameraHandler) respondError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		duplicate  *services.DuplicateError
		notFound   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &duplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("camera request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", middleware.GetRequestID(c),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
