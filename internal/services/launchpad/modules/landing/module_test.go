package landing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/platform/clock"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
)

type stubReader struct {
	snapshot countdown.Snapshot
}

func (s stubReader) Snapshot() countdown.Snapshot { return s.snapshot }

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	site, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	mount, err := New().Mount(module.Dependencies{
		Countdown: stubReader{snapshot: countdown.Snapshot{
			Remaining: countdown.Decompose(90061001 * time.Millisecond),
			Status:    countdown.StatusRunning,
			Urgency:   countdown.UrgencyNone,
		}},
		Site:             site,
		Clock:            clock.NewFake(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)),
		StatusResetAfter: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if len(mount.Paths) != 1 || mount.Paths[0] != "/" {
		t.Fatalf("Paths = %v, want [/]", mount.Paths)
	}
	return mount.Handler
}

func TestMountRequiresCountdown(t *testing.T) {
	t.Parallel()

	if _, err := New().Mount(module.Dependencies{}); err == nil {
		t.Fatal("expected error without countdown reader")
	}
}

func TestRootRendersLandingPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	handler := newHandler(t)
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, part := range []string{
		`<html lang="en">`,
		`Launching In`,
		`<span class="countdown-value">01</span><span class="countdown-label">Days</span>`,
		`Customer Reviews`,
		`© 2025 BEZTERN. All rights reserved.`,
	} {
		if !strings.Contains(body, part) {
			t.Fatalf("body missing %q", part)
		}
	}
}

func TestRootHonoursLanguageQueryAndSetsCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=hi-IN", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `<html lang="hi">`) {
		t.Fatalf("body missing hindi lang attribute")
	}
	if !strings.Contains(rr.Body.String(), "दिन") {
		t.Fatalf("body missing hindi unit label")
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "hi-IN" {
		t.Fatalf("cookies = %v, want launchpad_lang=hi-IN", cookies)
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	handler := newHandler(t)
	for _, path := range []string{"/missing", "/countdown/extra"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusNotFound)
		}
		if !strings.Contains(rr.Body.String(), "Page not found") {
			t.Fatalf("GET %s body missing not-found title", path)
		}
	}
}
