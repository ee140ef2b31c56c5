package handlers

import (
	"net/http"

	"snipr/internal/middleware"

	"github.com/gin-gonic/gin"
)

// DeleteURL deactivates a link. The row and its clicks are kept and the code
// is never handed out again.
func (h *Handler) DeleteURL(c *gin.Context) {
	shortCode := c.Param("short_code")
	if err := h.shortenerService.Deactivate(c.Request.Context(), shortCode, middleware.ClientIP(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "URL deactivated successfully"})
}
