package handlers

import (
	"net/http"

	"snipr/internal/middleware"
	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("short_code")

	target, err := h.shortenerService.Resolve(c.Request.Context(), shortCode, services.Visit{
		IPAddress: middleware.ClientIP(c),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, target)
}
