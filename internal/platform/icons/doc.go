// Package icons holds the inline SVG icon set used by the landing page.
//
// Icons are Lucide outlines keyed by name. Templates emit one hidden sprite
// per page and reference symbols with <use>, so content files only name
// an icon and never carry markup.
package icons
