package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		cookie    string
		accept    string
		want      string
		fromQuery bool
	}{
		{name: "default", url: "/", want: "en-US"},
		{name: "accept language", url: "/", accept: "hi-IN,hi;q=0.9,en;q=0.5", want: "hi-IN"},
		{name: "accept base language", url: "/", accept: "hi", want: "hi-IN"},
		{name: "accept unsupported", url: "/", accept: "fr-FR", want: "en-US"},
		{name: "cookie beats accept", url: "/", cookie: "hi-IN", accept: "en-US", want: "hi-IN"},
		{name: "query beats cookie", url: "/?lang=en-US", cookie: "hi-IN", want: "en-US", fromQuery: true},
		{name: "invalid query ignored", url: "/?lang=!!", accept: "hi", want: "hi-IN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			loc, fromQuery := FromRequest(req)
			if got := loc.Locale(); got != tc.want {
				t.Fatalf("Locale() = %q, want %q", got, tc.want)
			}
			if fromQuery != tc.fromQuery {
				t.Fatalf("fromQuery = %v, want %v", fromQuery, tc.fromQuery)
			}
		})
	}
}

func TestTranslateWithFallback(t *testing.T) {
	t.Parallel()

	hindi := New(language.MustParse("hi-IN"))
	if got := hindi.T("countdown.unit.days"); got != "दिन" {
		t.Fatalf("T(countdown.unit.days) = %q, want दिन", got)
	}
	if got := hindi.T("page.reviews.title"); got != "Customer Reviews" {
		t.Fatalf("T(page.reviews.title) = %q, want base locale text", got)
	}
	if got := hindi.T("missing.key"); got != "missing.key" {
		t.Fatalf("T(missing.key) = %q, want key", got)
	}
	if got := hindi.Lang(); got != "hi" {
		t.Fatalf("Lang() = %q, want hi", got)
	}

	var zero Localizer
	if got := zero.T("notify.submit"); got != "Send Message" {
		t.Fatalf("zero Localizer T = %q, want Send Message", got)
	}
}

func TestMatchRejectsUnsupported(t *testing.T) {
	t.Parallel()

	if _, ok := Match("fr-FR"); ok {
		t.Fatal("Match(fr-FR) ok = true, want false")
	}
	if _, ok := Match("not a tag"); ok {
		t.Fatal("Match(not a tag) ok = true, want false")
	}
	if tag, ok := Match("hi"); !ok || tag.String() != "hi-IN" {
		t.Fatalf("Match(hi) = %v, %v; want hi-IN", tag, ok)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, New(language.MustParse("hi-IN")))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "hi-IN" {
		t.Fatalf("cookies = %+v", cookies)
	}
}
