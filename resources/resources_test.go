package resources

import (
	"bytes"
	"image/png"
	"testing"
)

func TestGetAppIcon(t *testing.T) {
	icon := GetAppIcon()
	if icon.Name() != "app.png" {
		t.Errorf("Name() = %s, want app.png", icon.Name())
	}

	img, err := png.Decode(bytes.NewReader(icon.Content()))
	if err != nil {
		t.Fatalf("icon is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("icon size = %dx%d, want 128x128", b.Dx(), b.Dy())
	}
}
