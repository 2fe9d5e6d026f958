package templates

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/beztern/launchpad/internal/services/launchpad/content"
)

const maxRating = 5

// Hero renders the brand mark, the per-word animated headline and the tagline.
func Hero(site content.Site) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="hero"><div class="hero-logo">`)
		h.text(site.Brand)
		h.raw(`</div><h1 class="hero-headline">`)
		for i, word := range site.HeadlineWords() {
			h.raw(`<span class="hero-word"`)
			h.attr("style", "--word-index: "+itoa(i))
			h.raw(`>`)
			h.text(word)
			h.raw(`</span> `)
		}
		h.raw(`</h1>`)
		if site.Tagline != "" {
			h.raw(`<p class="hero-tagline">`)
			h.text(site.Tagline)
			h.raw(`</p>`)
		}
		h.raw(`</header>`)
	})
}

// Reviews renders the testimonial cards with star ratings.
func Reviews(reviews []content.Review, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	return component(func(h *htmlWriter) {
		if len(reviews) == 0 {
			return
		}
		h.raw(`<section id="reviews" class="reviews"><h2>`)
		h.text(loc.T("page.reviews.title"))
		h.raw(`</h2><div class="reviews-grid">`)
		for _, review := range reviews {
			h.raw(`<article class="review"><header class="review-header">`)
			h.icon("user")
			h.raw(`<div><p class="review-name">`)
			h.text(review.Name)
			h.raw(`</p><p class="review-date">`)
			h.text(review.Date)
			h.raw(`</p></div></header><div class="review-rating"`)
			h.attr("aria-label", itoa(review.Rating)+"/"+itoa(maxRating))
			h.raw(`>`)
			for star := 1; star <= maxRating; star++ {
				if star <= review.Rating {
					h.raw(`<span class="star is-filled">`)
				} else {
					h.raw(`<span class="star">`)
				}
				h.icon("star")
				h.raw(`</span>`)
			}
			h.raw(`</div><p class="review-text">`)
			h.text(review.Text)
			h.raw(`</p></article>`)
		}
		h.raw(`</div></section>`)
	})
}

// Contact renders the visit-us block.
func Contact(contact content.Contact, loc Localizer) templ.Component {
	loc = localizerOrKeys(loc)
	return component(func(h *htmlWriter) {
		h.raw(`<section id="contact" class="contact">`)
		if contact.Heading != "" {
			h.raw(`<h2>`)
			h.text(contact.Heading)
			h.raw(`</h2>`)
		}
		if contact.Blurb != "" {
			h.raw(`<p class="contact-blurb">`)
			h.text(contact.Blurb)
			h.raw(`</p>`)
		}
		h.raw(`<dl class="contact-details">`)
		contactDetail(h, "map-pin", "", contact.Address)
		contactDetail(h, "phone", "", contact.Phone)
		contactDetail(h, "clock", loc.T("page.contact.hours"), contact.Hours)
		h.raw(`</dl>`)
		linkList(h, "contact-links", contact.Links)
		linkList(h, "contact-social", contact.Social)
		h.raw(`</section>`)
	})
}

func contactDetail(h *htmlWriter, icon, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	h.raw(`<div class="contact-detail"><dt>`)
	h.icon(icon)
	if label != "" {
		h.raw(`<span class="visually-hidden">`)
		h.text(label)
		h.raw(`</span>`)
	}
	h.raw(`</dt><dd>`)
	h.text(value)
	h.raw(`</dd></div>`)
}

// Footer renders the copyright line and footer links.
func Footer(site content.Site, year int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<footer class="footer">`)
		linkList(h, "footer-links", site.Footer.Links)
		h.raw(`<p class="footer-copyright">`)
		h.text(site.Copyright(year))
		h.raw(`</p></footer>`)
	})
}

func linkList(h *htmlWriter, class string, links []content.Link) {
	if len(links) == 0 {
		return
	}
	h.raw(`<ul`)
	h.attr("class", class)
	h.raw(`>`)
	for _, link := range links {
		h.raw(`<li>`)
		linkAnchor(h, link)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}

func linkAnchor(h *htmlWriter, link content.Link) {
	h.raw(`<a`)
	h.href(link.URL)
	externalTarget(h, link.URL)
	h.attr("aria-label", link.Label)
	h.raw(`>`)
	if link.Icon != "" {
		h.icon(link.Icon)
	}
	h.raw(`<span>`)
	h.text(link.Label)
	h.raw(`</span></a>`)
}

func externalTarget(h *htmlWriter, url string) {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		h.raw(` target="_blank" rel="noopener noreferrer"`)
	}
}
