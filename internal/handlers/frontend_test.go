package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"snipr/internal/models"

	"github.com/stretchr/testify/assert"
)

func postForm(r http.Handler, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithCookies(r http.Handler, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFrontendHandlers(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Show Index", func(t *testing.T) {
		w := performRequest(r, "GET", "/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Shorten Link")
		assert.Contains(t, w.Body.String(), "No links yet.")
	})

	t.Run("Handle Shorten Form - Success", func(t *testing.T) {
		w := postForm(r, url.Values{"url": {"form.example"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		var row models.URL
		assert.NoError(t, db.Where("original_url = ?", "http://form.example").Take(&row).Error)

		follow := getWithCookies(r, "/", w.Result().Cookies())
		assert.Equal(t, http.StatusOK, follow.Code)
		body := follow.Body.String()
		assert.Contains(t, body, "URL shortened successfully!")
		assert.Contains(t, body, testBaseURL+"/"+row.ShortCode)
		assert.Contains(t, body, "http://form.example")

		// Flashes are consumed by the first render.
		again := getWithCookies(r, "/", follow.Result().Cookies())
		assert.NotContains(t, again.Body.String(), "URL shortened successfully!")
	})

	t.Run("Handle Shorten Form - Missing URL", func(t *testing.T) {
		w := postForm(r, url.Values{})
		assert.Equal(t, http.StatusSeeOther, w.Code)

		follow := getWithCookies(r, "/", w.Result().Cookies())
		assert.Contains(t, follow.Body.String(), "No URL provided")
	})

	t.Run("Handle Shorten Form - Invalid Input", func(t *testing.T) {
		w := postForm(r, url.Values{"url": {"not a url"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)

		follow := getWithCookies(r, "/", w.Result().Cookies())
		assert.Contains(t, follow.Body.String(), "Invalid URL")
	})
}

func TestListing(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		db.Create(&models.URL{
			OriginalURL: fmt.Sprintf("https://list.example/%d", i),
			ShortCode:   fmt.Sprintf("LIST%02d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			IsActive:    true,
		})
	}
	db.Model(&models.URL{}).Where("short_code = ?", "LIST00").Update("is_active", false)

	type listing struct {
		URLs       []models.URLView `json:"urls"`
		Page       int              `json:"page"`
		PageSize   int              `json:"page_size"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"total_pages"`
	}
	get := func(query string) listing {
		w := performRequest(r, "GET", "/api/urls"+query, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var l listing
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
		return l
	}

	t.Run("First page newest first", func(t *testing.T) {
		l := get("")
		assert.Equal(t, 1, l.Page)
		assert.Equal(t, 10, l.PageSize)
		assert.Equal(t, int64(23), l.Total)
		assert.Equal(t, 3, l.TotalPages)
		if assert.Len(t, l.URLs, 10) {
			assert.Equal(t, "LIST22", l.URLs[0].ShortCode)
			assert.Equal(t, "LIST13", l.URLs[9].ShortCode)
		}
	})

	t.Run("Last page includes inactive", func(t *testing.T) {
		l := get("?page=3")
		if assert.Len(t, l.URLs, 3) {
			assert.Equal(t, "LIST00", l.URLs[2].ShortCode)
			assert.False(t, l.URLs[2].IsActive)
		}
	})

	t.Run("Bad page falls back to first", func(t *testing.T) {
		assert.Equal(t, 1, get("?page=abc").Page)
		assert.Equal(t, 1, get("?page=-4").Page)
	})

	t.Run("Past the end is empty", func(t *testing.T) {
		l := get("?page=9")
		assert.Empty(t, l.URLs)
		assert.Equal(t, int64(23), l.Total)
	})

	t.Run("HTML pagination", func(t *testing.T) {
		w := performRequest(r, "GET", "/?page=2", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Page 2 of 3")
		assert.Contains(t, body, "/?page=1")
		assert.Contains(t, body, "/?page=3")
		assert.Contains(t, body, "LIST12")
		assert.NotContains(t, body, "LIST22")
	})
}
