// Package web provides the embedded static frontend.
package web

import "embed"

// StaticFS embeds the static assets served at the site root.
//
//go:embed static
var StaticFS embed.FS
