// Package appfs exposes the repository's embedded static assets.
package appfs

import "embed"

//go:embed templates
var FS embed.FS
