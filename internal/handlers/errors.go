package handlers

import (
	"errors"
	"net/http"

	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return "Invalid URL"
	case errors.Is(err, services.ErrNotFound):
		return "URL not found"
	default:
		return "Internal server error"
	}
}

// respondError maps a service error onto the JSON error body. Storage errors
// are logged here and never echoed to the client.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": messageFor(err)})
}

// renderError is the HTML counterpart of respondError.
func (h *Handler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}
	c.HTML(status, "error.html", gin.H{
		"Status": status,
		"Error":  messageFor(err),
	})
}
