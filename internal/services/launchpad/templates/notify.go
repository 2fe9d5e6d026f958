package templates

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/services/launchpad/content"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// NotifyStatusID is the element id replaced by sign-up responses.
const NotifyStatusID = "notify-status"

// Notify statuses rendered by the form.
const (
	NotifyIdle    = "idle"
	NotifySuccess = "success"
	NotifyError   = "error"
)

// NotifyView is the sign-up form state.
type NotifyView struct {
	Status     string
	MessageKey string
	Email      string
	ResetAfter time.Duration
}

// NotifySection renders the outbound contact options and the email form.
func NotifySection(site content.Site, view NotifyView, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	return component(func(h *htmlWriter) {
		h.raw(`<section id="notify" class="notify"><div class="notify-options">`)
		notifyOption(h, site.Notify.WhatsAppURL, "whatsapp", loc.T("notify.option.whatsapp"), loc.T("notify.option.whatsapp.hint"))
		notifyOption(h, site.Notify.PhoneURL, "phone", loc.T("notify.option.phone"), loc.T("notify.option.phone.hint"))
		h.raw(`<div class="notify-option notify-option-email">`)
		h.icon("email")
		h.raw(`<span>`)
		h.text(loc.T("notify.option.email"))
		h.raw(`</span></div></div>`)

		h.raw(`<form id="notify-form" class="notify-form" method="post"`)
		h.attr("action", routepath.Notify)
		h.attr("hx-post", routepath.Notify)
		h.attr("hx-target", "#"+NotifyStatusID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button")
		h.raw(`><label class="visually-hidden" for="notify-email">`)
		h.text(loc.T("notify.email.label"))
		h.raw(`</label><input id="notify-email" type="email" name="email" required autocomplete="email"`)
		h.attr("placeholder", loc.T("notify.email.placeholder"))
		if view.Email != "" {
			h.attr("value", view.Email)
		}
		h.raw(`><button type="submit"`)
		h.attr("data-label", loc.T("notify.submit"))
		h.attr("data-submitting", loc.T("notify.submitting"))
		h.raw(`>`)
		h.text(loc.T("notify.submit"))
		h.raw(`</button></form>`)
		h.component(NotifyStatus(view, loc))
		if len(site.Notify.Links) > 0 {
			h.raw(`<ul class="notify-links">`)
			for _, link := range site.Notify.Links {
				h.raw(`<li>`)
				linkAnchor(h, link)
				h.raw(`</li>`)
			}
			h.raw(`</ul>`)
		}
		h.raw(`</section>`)
	})
}

func notifyOption(h *htmlWriter, url, icon, label, hint string) {
	if url == "" {
		return
	}
	h.raw(`<a`)
	h.attr("class", "notify-option notify-option-"+icon)
	h.href(url)
	externalTarget(h, url)
	h.raw(`>`)
	h.icon(icon)
	h.raw(`<span>`)
	h.text(label)
	h.raw(`</span><small>`)
	h.text(hint)
	h.raw(`</small></a>`)
}

// NotifyStatus renders the sign-up status line. Non-idle states carry the
// delay after which the form returns to idle.
func NotifyStatus(view NotifyView, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	status := view.Status
	if status == "" {
		status = NotifyIdle
	}
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", NotifyStatusID)
		h.attr("class", "notify-status is-"+status)
		h.attr("data-status", status)
		h.raw(` role="status" aria-live="polite"`)
		if status != NotifyIdle && view.ResetAfter > 0 {
			h.attr("data-reset-after", strconv.FormatInt(view.ResetAfter.Milliseconds(), 10))
		}
		h.raw(`>`)
		switch status {
		case NotifySuccess:
			h.raw(`<strong>`)
			h.text(loc.T("notify.sent"))
			h.raw(`</strong> `)
			h.text(loc.T(messageKeyOr(view.MessageKey, "notify.success")))
		case NotifyError:
			h.text(loc.T(messageKeyOr(view.MessageKey, "notify.error.unavailable")))
		}
		h.raw(`</div>`)
	})
}

func messageKeyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}
