package testsupport

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// WriteImage writes a JPEG test image of the requested dimensions. The fill
// varies with position so resized output stays visually non-degenerate.
func WriteImage(t testing.TB, path string, width, height int) {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
	for x := 0; x < width; x += 64 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: 220, G: 220, B: 220, A: 255})
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(90)); err != nil {
		t.Fatalf("write test image %s: %v", path, err)
	}
}

// WritePNG writes a PNG test image, for exercising container conversion.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	img := imaging.New(width, height, color.NRGBA{R: 10, G: 180, B: 60, A: 255})
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("write test png %s: %v", path, err)
	}
}

// WriteFile fills the target path with the given bytes, creating parents.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
