package useradmin

import (
	"embed"
)

//go:embed views
var viewsFS embed.FS

// GetViewsFS returns the section templates for this package
func GetViewsFS() embed.FS {
	return viewsFS
}
