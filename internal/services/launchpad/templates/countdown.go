package templates

import (
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/countdown"
	"github.com/beztern/launchpad/internal/services/launchpad/routepath"
)

// CountdownSectionID is the element id swapped by the fragment route.
const CountdownSectionID = "countdown"

type countdownUnit struct {
	name  string
	key   string
	value int64
}

func countdownUnits(r countdown.Remaining) []countdownUnit {
	return []countdownUnit{
		{name: "days", key: "countdown.unit.days", value: r.Days},
		{name: "hours", key: "countdown.unit.hours", value: r.Hours},
		{name: "minutes", key: "countdown.unit.minutes", value: r.Minutes},
		{name: "seconds", key: "countdown.unit.seconds", value: r.Seconds},
		{name: "ms", key: "countdown.unit.ms", value: r.Centiseconds()},
	}
}

// PadUnit renders a unit value with at least two digits.
func PadUnit(value int64) string {
	if value < 0 {
		value = 0
	}
	return fmt.Sprintf("%02d", value)
}

// Countdown renders the countdown section for snap. The section re-polls the
// fragment route so clients without a stream still converge.
func Countdown(snap countdown.Snapshot, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	return component(func(h *htmlWriter) {
		class := "countdown urgency-" + string(snap.Urgency)
		if snap.Complete() {
			class = "countdown is-complete"
		}
		h.raw(`<section`)
		h.attr("id", CountdownSectionID)
		h.attr("class", class)
		h.attr("data-status", string(snap.Status))
		if !snap.Target.IsZero() {
			h.attr("data-target", snap.Target.UTC().Format(time.RFC3339Nano))
		}
		h.attr("data-stream", routepath.WSCountdown)
		h.attr("data-api", routepath.APICountdown)
		h.attr("hx-get", routepath.Countdown)
		h.attr("hx-trigger", "every 30s")
		h.attr("hx-swap", "outerHTML")
		h.raw(`>`)
		if snap.Complete() {
			h.raw(`<div class="countdown-complete" role="status"><h2>`)
			h.text(loc.T("countdown.complete.title"))
			h.raw(`</h2><p>`)
			h.text(loc.T("countdown.complete.body"))
			h.raw(`</p></div></section>`)
			return
		}
		h.raw(`<h2 class="countdown-title">`)
		h.text(loc.T("countdown.title"))
		h.raw(`</h2><div class="countdown-units">`)
		for _, unit := range countdownUnits(snap.Remaining) {
			h.raw(`<div class="countdown-unit"`)
			h.attr("data-unit", unit.name)
			h.raw(`><span class="countdown-value">`)
			h.text(PadUnit(unit.value))
			h.raw(`</span><span class="countdown-label">`)
			h.text(loc.T(unit.key))
			h.raw(`</span></div>`)
		}
		h.raw(`</div>`)
		h.raw(`<p class="countdown-milestone" aria-live="polite"`)
		if snap.Milestone == nil {
			h.raw(` hidden>`)
		} else {
			h.attr("data-threshold", strconv.FormatInt(snap.Milestone.Threshold, 10))
			h.raw(`>`)
			h.text(milestoneLabel(*snap.Milestone, loc))
		}
		h.raw(`</p>`)
		h.raw(`<div class="countdown-progress" role="progressbar" aria-valuemin="0" aria-valuemax="100"`)
		percent := strconv.FormatFloat(snap.Progress*100, 'f', 1, 64)
		h.attr("aria-valuenow", percent)
		h.raw(`><div class="countdown-progress-bar"`)
		h.attr("style", "width: "+percent+"%")
		h.raw(`></div></div></section>`)
	})
}

func milestoneLabel(m countdown.Milestone, loc Localizer) string {
	if m.Key != "" {
		if label := loc.T(m.Key); label != m.Key {
			return label
		}
	}
	return m.Label
}
