// Package templates embeds the HTML pages rendered by the view package.
package templates

import "embed"

//go:embed *.html partials/*.html
var FS embed.FS
