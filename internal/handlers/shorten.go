package handlers

import (
	"net/http"
	"strings"

	"snipr/internal/middleware"
	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenURL handles the API request to shorten a URL. Repeating a URL that
// already has an active link returns that link unchanged.
func (h *Handler) ShortenURL(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No URL provided"})
		return
	}

	newURL, _, err := h.shortenerService.CreateShortURL(c.Request.Context(), services.ShortenDTO{
		LongURL:   req.URL,
		IPAddress: middleware.ClientIP(c),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newURL.View())
}
