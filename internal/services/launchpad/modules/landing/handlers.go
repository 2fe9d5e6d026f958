package landing

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/beztern/launchpad/internal/platform/clock"
	"github.com/beztern/launchpad/internal/services/launchpad/content"
	module "github.com/beztern/launchpad/internal/services/launchpad/module"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/i18n"
	"github.com/beztern/launchpad/internal/services/launchpad/platform/pagerender"
	"github.com/beztern/launchpad/internal/services/launchpad/templates"
)

type handlers struct {
	countdown  module.CountdownReader
	site       content.Site
	clock      clock.Clock
	resetAfter time.Duration
	logger     *zap.Logger
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(w, r)
	view := templates.LandingView{
		Site:      h.site,
		Countdown: h.countdown.Snapshot(),
		Notify:    templates.NotifyView{Status: templates.NotifyIdle, ResetAfter: h.resetAfter},
		Year:      h.clock.Now().Year(),
	}
	h.write(w, r, http.StatusOK, templates.LandingPage(view, loc.Lang(), loc))
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	loc := h.localizer(w, r)
	h.write(w, r, http.StatusNotFound, templates.NotFoundPage(loc.Lang(), loc))
}

func (h handlers) localizer(w http.ResponseWriter, r *http.Request) i18n.Localizer {
	loc, fromQuery := i18n.FromRequest(r)
	if fromQuery {
		i18n.SetLanguageCookie(w, loc)
	}
	return loc
}

func (h handlers) write(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	if err := pagerender.Write(w, r, status, page); err != nil {
		h.logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
