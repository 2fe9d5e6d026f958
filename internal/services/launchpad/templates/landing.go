package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// LandingView is everything the landing page renders.
type LandingView struct {
	Site      content.Site
	Countdown countdown.Snapshot
	Notify    NotifyView
	Year      int
}

// LandingPage renders the full coming-soon page.
func LandingPage(view LandingView, lang string, loc Localizer) templ.Component {
	body := component(func(h *htmlWriter) {
		h.raw(`<div class="effects" aria-hidden="true"></div><main class="landing">`)
		h.component(Hero(view.Site))
		h.component(Countdown(view.Countdown, loc))
		h.component(NotifySection(view.Site, view.Notify, loc))
		h.component(Reviews(view.Site.Reviews, loc))
		h.component(Contact(view.Site.Contact, loc))
		h.raw(`</main>`)
		h.component(Footer(view.Site, view.Year))
	})
	return Page(PageMeta{
		Title:       view.Site.Headline,
		Description: view.Site.Tagline,
		Lang:        lang,
	}, body)
}

// NotFoundPage renders the 404 page.
func NotFoundPage(lang string, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	body := component(func(h *htmlWriter) {
		h.raw(`<main class="not-found"><h1>`)
		h.text(loc.T("page.not_found.title"))
		h.raw(`</h1><p>`)
		h.text(loc.T("page.not_found.body"))
		h.raw(`</p><a class="button"`)
		h.href(routepath.Root)
		h.raw(`>`)
		h.text(loc.T("page.not_found.home"))
		h.raw(`</a></main>`)
	})
	return Page(PageMeta{Title: loc.T("page.not_found.title"), Lang: lang}, body)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
