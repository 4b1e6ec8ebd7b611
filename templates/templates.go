// Package templates embeds the server-rendered HTML pages.
package templates

import "embed"

//go:embed layouts/*.html pages/*.html
var FS embed.FS
