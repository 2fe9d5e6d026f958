// Package branding holds the product name shown in page chrome.
package branding

import "strings"

// AppName is the product name used in titles and the footer.
const AppName = "BEZTERN"

const titleSuffix = " | " + AppName

// PageTitle composes "<title> | AppName", or AppName alone for a blank title.
// Titles that already carry the suffix are returned unchanged.
func PageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || title == AppName {
		return AppName
	}
	if strings.HasSuffix(title, titleSuffix) {
		return title
	}
	return title + titleSuffix
}
