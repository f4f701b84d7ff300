package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spaghettifunk/glkit/engine/core"
	"golang.org/x/image/bmp"
)

// SaveScreenshot writes img as a BMP file with a random name inside dir,
// creating dir if needed, and returns the file path.
func SaveScreenshot(dir string, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to save")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, uuid.NewString()+".bmp")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	core.LogInfo("Screenshot saved to %s", path)
	return path, nil
}
