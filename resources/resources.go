// Package resources embeds static assets shipped with the binary.
package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icons/app.png
var iconData []byte

// GetAppIcon returns the application icon.
func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "app.png",
		StaticContent: iconData,
	}
}
