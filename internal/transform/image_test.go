package transform_test

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"mediasim/internal/media"
	"mediasim/internal/profiles"
	"mediasim/internal/testsupport"
	"mediasim/internal/transform"
)

func newEngine() *transform.Engine {
	return transform.NewEngine("ffmpeg", 0, nil)
}

func fileItem(t *testing.T, dir, rel string, width, height int) media.Item {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	testsupport.WriteImage(t, path, width, height)
	return media.NewFileItem("DS", path, rel, media.AuthenticityAuthentic)
}

func decodeOutput(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open output %s: %v", path, err)
	}
	return img
}

func TestMaxEdgeDownscalePreservesAspect(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "big.jpg", 4000, 3000)
	out := filepath.Join(dir, "out.jpg")

	facebook, err := profiles.Lookup("facebook")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), facebook, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != 2048 {
		t.Fatalf("max dimension: got %d want 2048", w)
	}
	// 3000/4000 * 2048 = 1536
	if h < 1535 || h > 1537 {
		t.Fatalf("aspect not preserved: %dx%d", w, h)
	}
}

func TestMaxEdgeLeavesSmallImagesAlone(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "small.jpg", 640, 480)
	out := filepath.Join(dir, "out.jpg")

	telegram, err := profiles.Lookup("telegram_media")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), telegram, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	if img.Bounds().Dx() != 640 || img.Bounds().Dy() != 480 {
		t.Fatalf("dimensions changed: %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestAspectClampCropsTallImage(t *testing.T) {
	dir := t.TempDir()
	// Aspect 0.5 < 0.8: height is cropped to 800/0.8 = 1000, then scaled
	// to width 1080 -> height 1350.
	item := fileItem(t, dir, "tall.jpg", 800, 1600)
	out := filepath.Join(dir, "out.jpg")

	feed, err := profiles.Lookup("instagram_feed")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), feed, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != 1080 {
		t.Fatalf("width: got %d want 1080", w)
	}
	if h < 1349 || h > 1351 {
		t.Fatalf("height: got %d want 1350", h)
	}
}

func TestAspectClampCropsWideImage(t *testing.T) {
	dir := t.TempDir()
	// Aspect 2.5 > 1.91: width is cropped to 800*1.91 = 1528, then scaled
	// to width 1080 -> height int(1080/1528*800) = 565.
	item := fileItem(t, dir, "wide.jpg", 2000, 800)
	out := filepath.Join(dir, "out.jpg")

	feed, err := profiles.Lookup("instagram_feed")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), feed, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w != 1080 {
		t.Fatalf("width: got %d want 1080", w)
	}
	if h < 564 || h > 566 {
		t.Fatalf("height: got %d want ~565", h)
	}
}

func TestAspectClampScalesWithoutCropInRange(t *testing.T) {
	dir := t.TempDir()
	// Aspect 1.0 is inside [0.8, 1.91]: scale only.
	item := fileItem(t, dir, "square.jpg", 2160, 2160)
	out := filepath.Join(dir, "out.jpg")

	feed, err := profiles.Lookup("instagram_feed")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), feed, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1080 {
		t.Fatalf("expected 1080x1080, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFillBoxProducesExactCanvas(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "any.jpg", 3000, 2000)
	out := filepath.Join(dir, "out.jpg")

	story, err := profiles.Lookup("instagram_story")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), story, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1920 {
		t.Fatalf("expected 1080x1920, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestFitPadLetterboxesOntoBlackCanvas(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "landscape.jpg", 2000, 1000)
	out := filepath.Join(dir, "out.jpg")

	tiktok, err := profiles.Lookup("tiktok")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), tiktok, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1920 {
		t.Fatalf("expected 1080x1920 canvas, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// Top rows are letterbox fill: near-black after JPEG round-trip.
	r, g, b, _ := img.At(540, 10).RGBA()
	if r>>8 > 16 || g>>8 > 16 || b>>8 > 16 {
		t.Fatalf("expected black padding, got rgb(%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestFitPadDoesNotUpscaleSmallInput(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "tiny.jpg", 200, 100)
	out := filepath.Join(dir, "out.jpg")

	tiktok, err := profiles.Lookup("tiktok")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), tiktok, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	img := decodeOutput(t, out)
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1920 {
		t.Fatalf("expected 1080x1920 canvas, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	// Center pixel comes from the unscaled 200x100 input, not black fill.
	r, g, b, _ := img.At(540, 960).RGBA()
	if r>>8 < 16 && g>>8 < 16 && b>>8 < 16 {
		t.Fatal("center should carry image content, not padding")
	}
}

func TestPNGInputReencodesToJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.png")
	testsupport.WritePNG(t, path, 400, 300)
	item := media.NewFileItem("DS", path, "in.png", media.AuthenticityAuthentic)
	out := filepath.Join(dir, "out.jpg")

	facebook, err := profiles.Lookup("facebook")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), facebook, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte{0xff, 0xd8}) {
		t.Fatal("output is not a JPEG")
	}
}

func TestUndecodableImageFailsWithoutArtifact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.heic")
	testsupport.WriteFile(t, path, []byte("not an image"))
	item := media.NewFileItem("DS", path, "fake.heic", media.AuthenticityAuthentic)
	out := filepath.Join(dir, "out.jpg")

	facebook, err := profiles.Lookup("facebook")
	if err != nil {
		t.Fatal(err)
	}
	if err := newEngine().Apply(context.Background(), facebook, item, out); err == nil {
		t.Fatal("expected decode failure")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("failed transform must not leave output, stat err: %v", statErr)
	}
}
