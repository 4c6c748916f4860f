// Package web embeds the single-page dashboard.
package web

import "embed"

//go:embed static/index.html
var static embed.FS

// Index returns the dashboard page.
func Index() ([]byte, error) {
	return static.ReadFile("static/index.html")
}
