package assets

import "embed"

//go:embed "migrations" "images"
var EmbeddedFiles embed.FS
