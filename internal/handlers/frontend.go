package handlers

import (
	"net/http"
	"strconv"

	"snipr/internal/middleware"
	"snipr/internal/models"
	"snipr/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

type IndexForm struct {
	URL string `form:"url"`
}

// pageParam reads ?page, treating anything unparsable as the first page.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func views(urls []models.URL) []models.URLView {
	out := make([]models.URLView, 0, len(urls))
	for _, u := range urls {
		out = append(out, u.View())
	}
	return out
}

// ListURLs is the JSON listing behind the index page.
func (h *Handler) ListURLs(c *gin.Context) {
	page, err := h.shortenerService.ListURLs(c.Request.Context(), pageParam(c), h.cfg.PageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"urls":        views(page.Items),
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total":       page.Total,
		"total_pages": page.TotalPages,
	})
}

func (h *Handler) ShowIndex(c *gin.Context) {
	page, err := h.shortenerService.ListURLs(c.Request.Context(), pageParam(c), h.cfg.PageSize)
	if err != nil {
		h.renderError(c, err)
		return
	}

	session := sessions.Default(c)
	successes := session.Flashes(flashSuccess)
	errs := session.Flashes(flashError)
	shortURL := session.Flashes("short_url")
	if len(successes)+len(errs)+len(shortURL) > 0 {
		_ = session.Save()
	}

	data := gin.H{
		"URLs":    views(page.Items),
		"Page":    page,
		"BaseURL": h.baseURL(c),
	}
	if len(successes) > 0 {
		data["Message"] = successes[0]
	}
	if len(errs) > 0 {
		data["Error"] = errs[0]
	}
	if len(shortURL) > 0 {
		data["ShortURL"] = shortURL[0]
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// HandleShortenForm is the no-JavaScript path: it shortens and redirects
// back to the index, carrying the outcome in a flash message.
func (h *Handler) HandleShortenForm(c *gin.Context) {
	session := sessions.Default(c)

	var form IndexForm
	if err := c.ShouldBind(&form); err != nil || form.URL == "" {
		session.AddFlash("No URL provided", flashError)
		h.saveAndRedirect(c, session)
		return
	}

	newURL, _, err := h.shortenerService.CreateShortURL(c.Request.Context(), services.ShortenDTO{
		LongURL:   form.URL,
		IPAddress: middleware.ClientIP(c),
	})
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Error("Failed to shorten from form", "error", err)
		}
		session.AddFlash(messageFor(err), flashError)
		h.saveAndRedirect(c, session)
		return
	}

	session.AddFlash("URL shortened successfully!", flashSuccess)
	session.AddFlash(h.shortLink(c, newURL.ShortCode), "short_url")
	h.saveAndRedirect(c, session)
}

func (h *Handler) saveAndRedirect(c *gin.Context, session sessions.Session) {
	if err := session.Save(); err != nil {
		h.logger.Warn("Failed to save session", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
