// Package web embeds the HTML report templates.
package web

import "embed"

// Templates embeds the report templates under templates/report.
//
//go:embed templates/report/*.html
var Templates embed.FS
