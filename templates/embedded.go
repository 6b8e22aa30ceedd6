// Package templates provides read-only access to page templates compiled
// into the binary.
package templates

import "embed"

// EmbeddedTemplates holds the default site page templates.
//
//go:embed *.html.tmpl
var EmbeddedTemplates embed.FS
