package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
)

type mapLocalizer map[string]string

func (m mapLocalizer) T(key string) string {
	if value, ok := m[key]; ok {
		return value
	}
	return key
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, part := range parts {
		if !strings.Contains(body, part) {
			t.Fatalf("body missing %q\nbody: %s", part, body)
		}
	}
}

func defaultSite(t *testing.T) content.Site {
	t.Helper()
	site, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default() error = %v", err)
	}
	return site
}

func TestCountdownRendersPaddedUnits(t *testing.T) {
	t.Parallel()

	snap := countdown.Snapshot{
		Target:    time.Date(2025, 5, 11, 6, 30, 0, 0, time.UTC),
		Remaining: countdown.Decompose(90061001 * time.Millisecond),
		Status:    countdown.StatusRunning,
		Urgency:   countdown.UrgencyNone,
		Progress:  0.5,
	}
	body := render(t, Countdown(snap, mapLocalizer{"countdown.unit.days": "Days"}))
	assertContains(t, body,
		`id="countdown"`,
		`class="countdown urgency-none"`,
		`data-target="2025-05-11T06:30:00Z"`,
		`hx-get="/countdown"`,
		`data-unit="days"><span class="countdown-value">01</span><span class="countdown-label">Days</span>`,
		`data-unit="ms"><span class="countdown-value">00</span>`,
		`style="width: 50.0%"`,
		`class="countdown-milestone" aria-live="polite" hidden>`,
	)
}

func TestCountdownRendersMilestoneAndCompleteStates(t *testing.T) {
	t.Parallel()

	loc := mapLocalizer{
		"countdown.milestone.minute": "1 minute remaining",
		"countdown.complete.title":   "Time's Up!",
	}
	running := countdown.Snapshot{
		Status:    countdown.StatusRunning,
		Urgency:   countdown.UrgencyHigh,
		Remaining: countdown.Decompose(time.Minute),
		Milestone: &countdown.Milestone{Threshold: 60, Key: "countdown.milestone.minute"},
	}
	assertContains(t, render(t, Countdown(running, loc)), `urgency-high`, `data-threshold="60">1 minute remaining</p>`)

	unlabeled := running
	unlabeled.Milestone = &countdown.Milestone{Threshold: 5, Key: "missing.key", Label: "five"}
	assertContains(t, render(t, Countdown(unlabeled, loc)), `>five</p>`)

	done := countdown.Snapshot{Status: countdown.StatusComplete}
	body := render(t, Countdown(done, loc))
	assertContains(t, body, `class="countdown is-complete"`, `data-status="complete"`, `Time&#39;s Up!`)
	if strings.Contains(body, "countdown-value") {
		t.Fatalf("complete countdown rendered unit values: %s", body)
	}
}

func TestPadUnit(t *testing.T) {
	t.Parallel()

	tests := map[int64]string{0: "00", 7: "07", 42: "42", 365: "365", -3: "00"}
	for input, want := range tests {
		if got := PadUnit(input); got != want {
			t.Fatalf("PadUnit(%d) = %q, want %q", input, got, want)
		}
	}
}

func TestNotifyStatusStates(t *testing.T) {
	t.Parallel()

	loc := mapLocalizer{
		"notify.sent":                "Message Sent!",
		"notify.success":             "Thanks!",
		"notify.error.invalid_email": "Please enter a valid email address.",
		"notify.error.unavailable":   "Try later.",
	}

	idle := render(t, NotifyStatus(NotifyView{}, loc))
	assertContains(t, idle, `id="notify-status"`, `data-status="idle"`)
	if strings.Contains(idle, "data-reset-after") {
		t.Fatalf("idle status carries reset: %s", idle)
	}

	success := render(t, NotifyStatus(NotifyView{Status: NotifySuccess, ResetAfter: 3 * time.Second}, loc))
	assertContains(t, success, `is-success`, `data-reset-after="3000"`, `<strong>Message Sent!</strong> Thanks!`)

	invalid := render(t, NotifyStatus(NotifyView{Status: NotifyError, MessageKey: "notify.error.invalid_email"}, loc))
	assertContains(t, invalid, `is-error`, `Please enter a valid email address.`)

	unavailable := render(t, NotifyStatus(NotifyView{Status: NotifyError}, loc))
	assertContains(t, unavailable, `Try later.`)
}

func TestNotifySectionRendersOptionsAndForm(t *testing.T) {
	t.Parallel()

	site := defaultSite(t)
	body := render(t, NotifySection(site, NotifyView{Email: "a@b.co"}, nil))
	assertContains(t, body,
		`href="https://wa.me/919079195956" target="_blank"`,
		`href="tel:+919079195956">`,
		`hx-post="/notify"`,
		`hx-target="#notify-status"`,
		`name="email"`,
		`value="a@b.co"`,
		`href="#icon-message-square"`,
	)
}

func TestSectionsEscapeContent(t *testing.T) {
	t.Parallel()

	site := defaultSite(t)
	site.Reviews = []content.Review{{Name: "<b>Eve</b>", Date: "1/1/2025", Text: "Great & fast", Rating: 3}}
	body := render(t, Reviews(site.Reviews, nil))
	assertContains(t, body, `&lt;b&gt;Eve&lt;/b&gt;`, `Great &amp; fast`, `aria-label="3/5"`)
	if got := strings.Count(body, "star is-filled"); got != 3 {
		t.Fatalf("filled stars = %d, want 3", got)
	}
	if got := strings.Count(body, `<span class="star">`); got != 2 {
		t.Fatalf("empty stars = %d, want 2", got)
	}
}

func TestLinksSanitizeUnsafeURLs(t *testing.T) {
	t.Parallel()

	site := defaultSite(t)
	site.Footer.Links = []content.Link{{Label: "x", URL: "javascript:alert(1)"}}
	body := render(t, Footer(site, 2025))
	if strings.Contains(body, "javascript:") {
		t.Fatalf("unsafe URL rendered: %s", body)
	}
	assertContains(t, body, "© 2025 BEZTERN. All rights reserved.")
}

func TestLandingPageComposesSections(t *testing.T) {
	t.Parallel()

	site := defaultSite(t)
	view := LandingView{
		Site:      site,
		Countdown: countdown.Snapshot{Status: countdown.StatusRunning},
		Year:      2025,
	}
	body := render(t, LandingPage(view, "hi", nil))
	assertContains(t, body,
		`<!DOCTYPE html><html lang="hi">`,
		`<title>We&#39;re Launching Soon | BEZTERN</title>`,
		`<symbol id="icon-star"`,
		`href="/static/css/launchpad.css"`,
		`src="/static/js/countdown.js"`,
		`<span class="hero-word" style="--word-index: 0">We&#39;re</span>`,
		`id="countdown"`,
		`id="notify"`,
		`id="reviews"`,
		`id="contact"`,
		`Sagwara, राजस्थान, भारत`,
		`class="footer"`,
	)
}

func TestNotFoundPage(t *testing.T) {
	t.Parallel()

	body := render(t, NotFoundPage("", mapLocalizer{"page.not_found.title": "Page not found"}))
	assertContains(t, body, `<html lang="en">`, `<title>Page not found | BEZTERN</title>`, `href="/"`)
}
