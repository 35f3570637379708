// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"factshare/internal/board/boardtest"
	"factshare/internal/handlers"
	"factshare/internal/middleware"
	"factshare/internal/render"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// newTestRouter builds the full router over an in-memory backend without
// sessions.
func newTestRouter(t *testing.T, svc *boardtest.Service, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return New(nil, handlers.NewFacts(renderer, nil, svc), limiter, false)
}

// csrfCookie performs a GET and returns the CSRF cookie it was issued.
func csrfCookie(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			return c
		}
	}
	t.Fatal("expected CSRF cookie on GET /")
	return nil
}

func TestRoutes(t *testing.T) {
	fact := boardtest.Fact("Sloths can hold their breath for forty minutes", "science", 1, 0, 0)
	h := newTestRouter(t, boardtest.New(fact), nil)

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/?category=science", http.StatusOK},
		{"/facts?category=science", http.StatusOK},
		{"/facts/form?open=1", http.StatusSeeOther},
		{"/facts/" + fact.ID.String(), http.StatusOK},
		{"/health", http.StatusOK},
		{"/static/style.css", http.StatusOK},
		{"/static/app.js", http.StatusOK},
		{"/static/missing.css", http.StatusNotFound},
		{"/admin", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("GET %s: got %d, want %d", tt.path, w.Code, tt.want)
			}
		})
	}
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	h := newTestRouter(t, boardtest.New(), nil)

	for _, path := range []string{"/", "/health", "/static/style.css"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Errorf("%s: missing X-Content-Type-Options", path)
		}
		if w.Header().Get("Content-Security-Policy") == "" {
			t.Errorf("%s: missing Content-Security-Policy", path)
		}
	}
}

func TestWritesRequireCSRF(t *testing.T) {
	svc := boardtest.New()
	h := newTestRouter(t, svc, nil)
	cookie := csrfCookie(t, h)

	form := url.Values{
		"text":     {"Cats sleep for around two thirds of their lives"},
		"source":   {"https://example.com/cats"},
		"category": {"science"},
	}

	// No token.
	req := httptest.NewRequest("POST", "/facts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("POST without token: got %d, want 403", w.Code)
	}
	if svc.CallCount() != 0 {
		t.Errorf("backend called %d times for a rejected request", svc.CallCount())
	}

	// Token in the HTMX header.
	req = httptest.NewRequest("POST", "/facts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set(middleware.CSRFHeaderName, cookie.Value)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("POST with token: got %d, want 201; body: %s", w.Code, w.Body.String())
	}
}

func TestWritesAreRateLimited(t *testing.T) {
	fact := boardtest.Fact("A day on Venus is longer than its year", "science", 0, 0, 0)
	limiter := middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)

	h := newTestRouter(t, boardtest.New(fact), limiter)
	cookie := csrfCookie(t, h)

	vote := func() int {
		req := httptest.NewRequest("POST", "/facts/"+fact.ID.String()+"/votes/votes_interesting", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set(middleware.CSRFHeaderName, cookie.Value)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := vote(); code != http.StatusOK {
			t.Fatalf("vote %d: got %d, want 200", i+1, code)
		}
	}
	if code := vote(); code != http.StatusTooManyRequests {
		t.Errorf("third vote: got %d, want 429", code)
	}

	// Reads are not limited.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET / after limit: got %d, want 200", w.Code)
	}
}
