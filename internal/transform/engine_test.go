package transform_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"mediasim/internal/media"
	"mediasim/internal/profiles"
	"mediasim/internal/testsupport"
	"mediasim/internal/transform"
)

func TestDocumentPassthroughIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	content := []byte("png-ish payload \x89PNG with trailing bytes")
	path := filepath.Join(dir, "img.png")
	testsupport.WriteFile(t, path, content)
	item := media.NewFileItem("DS", path, "img.png", media.AuthenticitySynthetic)

	for _, name := range []string{"whatsapp_document", "signal_document", "telegram_document"} {
		prof, err := profiles.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		out := filepath.Join(dir, name+"_out"+prof.OutputExt(item.Ext()))
		if err := transform.NewEngine("ffmpeg", 0, nil).Apply(context.Background(), prof, item, out); err != nil {
			t.Fatalf("%s Apply failed: %v", name, err)
		}
		got, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("%s output not byte-identical", name)
		}
	}
}

func TestDocumentPassthroughFromMemory(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{1, 2, 3, 4, 5}
	item := media.NewHubItem("COCO", "val_3.jpg", 3, media.AuthenticityAuthentic, payload)

	prof, err := profiles.Lookup("original")
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "val_3_original.jpg")
	if err := transform.NewEngine("ffmpeg", 0, nil).Apply(context.Background(), prof, item, out); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("original copy not byte-identical")
	}
}

func TestApplyRejectsInapplicableKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, path, []byte("mp4"))
	item := media.NewFileItem("DS", path, "clip.mp4", media.AuthenticityAuthentic)

	facebook, err := profiles.Lookup("facebook")
	if err != nil {
		t.Fatal(err)
	}
	if err := transform.NewEngine("ffmpeg", 0, nil).Apply(context.Background(), facebook, item, filepath.Join(dir, "out.jpg")); err == nil {
		t.Fatal("facebook must reject video items")
	}
}

func TestApplyHonorsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	item := fileItem(t, dir, "img.jpg", 100, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	facebook, err := profiles.Lookup("facebook")
	if err != nil {
		t.Fatal(err)
	}
	if err := transform.NewEngine("ffmpeg", 0, nil).Apply(ctx, facebook, item, filepath.Join(dir, "out.jpg")); err == nil {
		t.Fatal("expected context error")
	}
}

func TestVideoRequiresOnDiskPayload(t *testing.T) {
	item := media.NewHubItem("X", "clip.mp4", 0, media.AuthenticityAuthentic, []byte("bytes"))
	tiktok, err := profiles.Lookup("tiktok")
	if err != nil {
		t.Fatal(err)
	}
	if err := transform.NewEngine("ffmpeg", 0, nil).Apply(context.Background(), tiktok, item, filepath.Join(t.TempDir(), "out.mp4")); err == nil {
		t.Fatal("expected error for in-memory video payload")
	}
}
