package handlers

import (
	"net/http"

	"snipr/internal/models"
	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

type ClickView struct {
	ClickedAt  string `json:"clicked_at"`
	Referrer   string `json:"referrer"`
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"device_type"`
	Country    string `json:"country"`
}

// StatsResponse is the URL JSON with the click aggregates merged in.
type StatsResponse struct {
	models.URLView
	DailyClicks  []services.DailyClicks `json:"daily_clicks"`
	Browsers     []services.Breakdown   `json:"browsers"`
	OS           []services.Breakdown   `json:"os"`
	Devices      []services.Breakdown   `json:"devices"`
	Countries    []services.Breakdown   `json:"countries"`
	Referrers    []services.Breakdown   `json:"referrers"`
	RecentClicks []ClickView            `json:"recent_clicks"`
}

func newStatsResponse(s *services.URLStats) StatsResponse {
	resp := StatsResponse{
		URLView:      s.URL.View(),
		DailyClicks:  s.DailyClicks,
		Browsers:     s.Browsers,
		OS:           s.OS,
		Devices:      s.Devices,
		Countries:    s.Countries,
		Referrers:    s.Referrers,
		RecentClicks: make([]ClickView, 0, len(s.RecentClicks)),
	}
	for _, click := range s.RecentClicks {
		resp.RecentClicks = append(resp.RecentClicks, ClickView{
			ClickedAt:  click.ClickedAt.UTC().Format(models.TimeLayout),
			Referrer:   click.Referrer,
			Browser:    click.Browser,
			OS:         click.OS,
			DeviceType: click.DeviceType,
			Country:    click.Country,
		})
	}
	return resp
}

// GetStats returns the counters and click aggregates of an active link.
// Reading stats never counts as a visit.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context(), c.Param("short_code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newStatsResponse(stats))
}

func (h *Handler) ShowStats(c *gin.Context) {
	stats, err := h.statsService.GetStats(c.Request.Context(), c.Param("short_code"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "stats.html", gin.H{
		"Stats":    newStatsResponse(stats),
		"ShortURL": h.shortLink(c, stats.URL.ShortCode),
	})
}
