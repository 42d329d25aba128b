package media_test

import (
	"io"
	"testing"

	"mediasim/internal/media"
)

func TestNewFileItemDerivesGroup(t *testing.T) {
	cases := []struct {
		name        string
		relPath     string
		wantGroup   string
		wantDetail  string
		wantName    string
		wantExt     string
		wantKind    media.Kind
	}{
		{"flat", "img.jpg", "", "", "img.jpg", ".jpg", media.KindImage},
		{"one level", "modelA/img.PNG", "modelA", "", "img.PNG", ".png", media.KindImage},
		{"nested", "modelA/v2/batch1/img.webp", "modelA", "v2/batch1", "img.webp", ".webp", media.KindImage},
		{"video", "clips/sample.MP4", "clips", "", "sample.MP4", ".mp4", media.KindVideo},
		{"unknown", "notes/readme.txt", "notes", "", "readme.txt", ".txt", media.KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := media.NewFileItem("SAFE", "/data/"+tc.relPath, tc.relPath, media.AuthenticitySynthetic)
			if item.Group != tc.wantGroup {
				t.Fatalf("group: got %q want %q", item.Group, tc.wantGroup)
			}
			if item.GroupDetail != tc.wantDetail {
				t.Fatalf("group detail: got %q want %q", item.GroupDetail, tc.wantDetail)
			}
			if item.Filename() != tc.wantName {
				t.Fatalf("filename: got %q want %q", item.Filename(), tc.wantName)
			}
			if item.Ext() != tc.wantExt {
				t.Fatalf("ext: got %q want %q", item.Ext(), tc.wantExt)
			}
			if item.Kind() != tc.wantKind {
				t.Fatalf("kind: got %q want %q", item.Kind(), tc.wantKind)
			}
		})
	}
}

func TestHubItemOpensPayload(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	item := media.NewHubItem("COCO", "val_7.jpg", 7, media.AuthenticityAuthentic, payload)

	if !item.InMemory() {
		t.Fatal("expected in-memory payload")
	}
	if item.HubIndex != 7 {
		t.Fatalf("hub index: got %d", item.HubIndex)
	}

	r, err := item.Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read payload: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: got %v", got)
	}
}

func TestOpenRequiresSource(t *testing.T) {
	var item media.Item
	if _, err := item.Open(); err == nil {
		t.Fatal("expected error for item without payload source")
	}
}
