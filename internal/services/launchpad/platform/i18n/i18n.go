// Package i18n resolves the visitor locale and translates catalog keys.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/beztern/launchpad/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "launchpad_lang"
)

var matcher = language.NewMatcher(catalog.Default().Tags())

// Localizer translates catalog keys for one resolved locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for tag, defaulting to the base locale.
func New(tag language.Tag) Localizer {
	if tag == language.Und {
		tag = language.MustParse(catalog.BaseLocale)
	}
	return Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// FromRequest resolves the request locale and returns its Localizer. The bool
// reports whether the lang query parameter selected it.
func FromRequest(r *http.Request) (Localizer, bool) {
	tag, fromQuery := ResolveTag(r)
	return New(tag), fromQuery
}

// T returns the translation for key, or key itself when no catalog has it.
func (l Localizer) T(key string) string {
	if l.printer == nil {
		l = New(language.Und)
	}
	bundle := catalog.Default()
	if bundle.HasMessage(l.Locale(), key) {
		return l.printer.Sprintf(key)
	}
	if value, ok := bundle.Message(catalog.BaseLocale, key); ok {
		return value
	}
	return key
}

// Tag returns the resolved language tag.
func (l Localizer) Tag() language.Tag {
	return l.tag
}

// Locale returns the catalog locale identifier for the resolved tag.
func (l Localizer) Locale() string {
	return Supported(l.tag)
}

// Lang returns the BCP 47 base language for the html lang attribute.
func (l Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}

// ResolveTag picks the best supported tag from the lang query parameter, the
// language cookie, then Accept-Language.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	fallback := language.MustParse(catalog.BaseLocale)
	if r == nil {
		return fallback, false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := Match(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := Match(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			tag, _, _ := matcher.Match(tags...)
			return normalize(tag), false
		}
	}
	return fallback, false
}

// Match parses value and maps it onto a supported tag. It reports false when
// value is malformed or matches no supported locale.
func Match(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	tag, _, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.Und, false
	}
	return normalize(tag), true
}

// Supported maps tag onto the catalog locale it matches.
func Supported(tag language.Tag) string {
	matched, _, _ := matcher.Match(tag)
	return normalize(matched).String()
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, l Localizer) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    l.Locale(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// normalize strips the -u-rg extensions the matcher adds so tags compare equal
// to catalog locales.
func normalize(tag language.Tag) language.Tag {
	for _, supported := range catalog.Default().Tags() {
		base, _ := supported.Base()
		region, _ := supported.Region()
		tagBase, _ := tag.Base()
		tagRegion, _ := tag.Region()
		if base == tagBase && region == tagRegion {
			return supported
		}
	}
	for _, supported := range catalog.Default().Tags() {
		base, _ := supported.Base()
		tagBase, _ := tag.Base()
		if base == tagBase {
			return supported
		}
	}
	return language.MustParse(catalog.BaseLocale)
}
