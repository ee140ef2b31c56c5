package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"snipr/internal/middleware"
	"snipr/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "snipr_session"

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.New()

	r.SetFuncMap(template.FuncMap{
		"json": func(v interface{}) template.JS {
			a, _ := json.Marshal(v)
			return template.JS(a)
		},
		"dict": func(kv ...interface{}) map[string]interface{} {
			m := make(map[string]interface{}, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
	})

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	// Middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(h.logger))
	r.Use(cors.New(h.corsConfig()))

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	limit := middleware.RateLimit(rateLimiter)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// HTML
	r.GET("/", h.ShowIndex)
	r.POST("/", limit, h.HandleShortenForm)

	// JSON API
	api := r.Group("/api")
	{
		api.POST("/shorten", limit, h.ShortenURL)
		api.GET("/stats/:short_code", h.GetStats)
		api.DELETE("/delete/:short_code", h.DeleteURL)
		api.GET("/urls", h.ListURLs)
		api.GET("/qr/:short_code", h.GetQRCode)
	}

	// Catch-all Redirects
	r.GET("/:short_code", h.RedirectToURL)
	r.GET("/:short_code/stats", h.ShowStats)

	return r
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := strings.TrimSpace(h.cfg.CORSOrigins)
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	return cfg
}
