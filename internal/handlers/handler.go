package handlers

import (
	"log/slog"
	"strings"

	"snipr/internal/config"
	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	cfg              config.Config
	logger           *slog.Logger
	shortenerService *services.ShortenerService
	statsService     *services.StatsService
	qrService        *services.QRService
}

func NewHandler(
	cfg config.Config,
	logger *slog.Logger,
	shortenerService *services.ShortenerService,
	statsService *services.StatsService,
	qrService *services.QRService,
) *Handler {
	return &Handler{
		cfg:              cfg,
		logger:           logger,
		shortenerService: shortenerService,
		statsService:     statsService,
		qrService:        qrService,
	}
}

// baseURL is the public origin short links are built on. BASE_URL wins over
// the request's own host.
func (h *Handler) baseURL(c *gin.Context) string {
	if h.cfg.BaseURL != "" {
		return strings.TrimRight(h.cfg.BaseURL, "/")
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *Handler) shortLink(c *gin.Context, code string) string {
	return h.baseURL(c) + "/" + code
}
