// Package content loads the landing page copy: brand, hero text, reviews,
// contact details and outbound links.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/beztern/launchpad/internal/platform/errors"
)

const yearPlaceholder = "{year}"

//go:embed default.yaml
var defaultYAML []byte

// Site is the full page copy.
type Site struct {
	Brand    string   `yaml:"brand"`
	Headline string   `yaml:"headline"`
	Tagline  string   `yaml:"tagline"`
	Notify   Notify   `yaml:"notify"`
	Reviews  []Review `yaml:"reviews"`
	Contact  Contact  `yaml:"contact"`
	Footer   Footer   `yaml:"footer"`
}

// Notify holds the outbound notification options shown beside the email form.
type Notify struct {
	WhatsAppURL string `yaml:"whatsapp_url"`
	PhoneURL    string `yaml:"phone_url"`
	Links       []Link `yaml:"links"`
}

// Review is one customer testimonial.
type Review struct {
	Name   string `yaml:"name"`
	Date   string `yaml:"date"`
	Text   string `yaml:"text"`
	Rating int    `yaml:"rating"`
}

// Contact is the visit-us block.
type Contact struct {
	Heading string `yaml:"heading"`
	Blurb   string `yaml:"blurb"`
	Address string `yaml:"address"`
	Phone   string `yaml:"phone"`
	Hours   string `yaml:"hours"`
	Links   []Link `yaml:"links"`
	Social  []Link `yaml:"social"`
}

// Footer is the page footer.
type Footer struct {
	// Copyright may contain {year}.
	Copyright string `yaml:"copyright"`
	Links     []Link `yaml:"links"`
}

// Link is an outbound anchor with an icon name understood by the templates.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  string `yaml:"icon"`
}

// Default returns the embedded site copy.
func Default() (Site, error) {
	return Parse(bytes.NewReader(defaultYAML))
}

// Load reads site copy from path, or the embedded default when path is blank.
func Load(path string) (Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return Site{}, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	site, err := Parse(f)
	if err != nil {
		return Site{}, fmt.Errorf("load content %s: %w", path, err)
	}
	return site, nil
}

// Parse decodes and validates site copy. Unknown fields are rejected.
func Parse(r io.Reader) (Site, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var site Site
	if err := decoder.Decode(&site); err != nil {
		if errors.Is(err, io.EOF) {
			return Site{}, apperrors.E(apperrors.KindInvalidInput, "content is empty")
		}
		return Site{}, apperrors.Wrap(apperrors.KindInvalidInput, "", "decode content", err)
	}
	if err := site.Validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

// Validate checks the fields the page cannot render without.
func (s Site) Validate() error {
	if strings.TrimSpace(s.Brand) == "" {
		return apperrors.E(apperrors.KindInvalidInput, "brand is required")
	}
	if strings.TrimSpace(s.Headline) == "" {
		return apperrors.E(apperrors.KindInvalidInput, "headline is required")
	}
	for i, review := range s.Reviews {
		if review.Rating < 1 || review.Rating > 5 {
			return apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("review %d: rating %d must be between 1 and 5", i+1, review.Rating))
		}
		if strings.TrimSpace(review.Text) == "" {
			return apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("review %d: text is required", i+1))
		}
	}
	for _, group := range [][]Link{s.Notify.Links, s.Contact.Links, s.Contact.Social, s.Footer.Links} {
		for _, link := range group {
			if strings.TrimSpace(link.URL) == "" {
				return apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("link %q: url is required", link.Label))
			}
		}
	}
	return nil
}

// HeadlineWords splits the headline for per-word animation.
func (s Site) HeadlineWords() []string {
	return strings.Fields(s.Headline)
}

// Copyright renders the footer notice for year.
func (s Site) Copyright(year int) string {
	return strings.ReplaceAll(s.Footer.Copyright, yearPlaceholder, strconv.Itoa(year))
}
