package handlers

import (
	"net/http"
	"strconv"

	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// GetQRCode renders the short link of an active code as a PNG.
// Optional query: size, fg, bg (hex colors).
func (h *Handler) GetQRCode(c *gin.Context) {
	url, err := h.shortenerService.Lookup(c.Request.Context(), c.Param("short_code"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))
	if size != 0 {
		size = min(max(size, minQRSize), maxQRSize)
	}

	png, err := h.qrService.GenerateQRCode(services.QROptions{
		Content: h.shortLink(c, url.ShortCode),
		Size:    size,
		FgColor: c.Query("fg"),
		BgColor: c.Query("bg"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}
