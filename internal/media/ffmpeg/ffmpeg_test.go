package ffmpeg_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediasim/internal/media/ffmpeg"
)

func TestArgsFullEncode(t *testing.T) {
	encode := ffmpeg.Encode{
		Input:   "in.mov",
		Output:  "out.mp4",
		Filters: []string{"scale=1080:1920:force_original_aspect_ratio=decrease", "pad=1080:1920:(ow-iw)/2:(oh-ih)/2:black"},
		FrameRate:     30,
		Preset:        "veryfast",
		Bitrate:       "2500k",
		MaxRate:       "2500k",
		BufSize:       "5000k",
		AudioBitrate:  "128k",
		AudioChannels: 2,
		PixelFormat:   "yuv420p",
		StripMetadata: true,
	}

	got := strings.Join(encode.Args(), " ")
	want := "-y -i in.mov " +
		"-vf scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2:black,fps=30 " +
		"-c:v libx264 -preset veryfast -b:v 2500k -maxrate 2500k -bufsize 5000k " +
		"-c:a aac -b:a 128k -ac 2 -pix_fmt yuv420p -map_metadata -1 out.mp4"
	if got != want {
		t.Fatalf("args mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestArgsMinimalEncode(t *testing.T) {
	encode := ffmpeg.Encode{
		Input:         "a.mp4",
		Output:        "b.mp4",
		Filters:       []string{"scale=-2:480"},
		FrameRate:     30,
		Bitrate:       "1.5M",
		StripMetadata: true,
	}

	got := strings.Join(encode.Args(), " ")
	want := "-y -i a.mp4 -vf scale=-2:480,fps=30 -c:v libx264 -b:v 1.5M -c:a aac -map_metadata -1 b.mp4"
	if got != want {
		t.Fatalf("args mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestArgsFastStart(t *testing.T) {
	encode := ffmpeg.Encode{Input: "a.mp4", Output: "b.mp4", FastStart: true}
	args := encode.Args()
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-movflags +faststart") {
		t.Fatalf("faststart flag missing: %s", joined)
	}
	if args[len(args)-1] != "b.mp4" {
		t.Fatalf("output must be the final argument: %v", args)
	}
}

func TestRunRejectsEmptyPaths(t *testing.T) {
	ctx := context.Background()
	if err := ffmpeg.Run(ctx, "ffmpeg", ffmpeg.Encode{Output: "x"}); err == nil {
		t.Fatal("expected error for empty input")
	}
	if err := ffmpeg.Run(ctx, "ffmpeg", ffmpeg.Encode{Input: "x"}); err == nil {
		t.Fatal("expected error for empty output")
	}
}

func TestRunFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()

	// Stub "ffmpeg" that writes a partial file and exits non-zero.
	stub := filepath.Join(dir, "ffmpeg-stub")
	out := filepath.Join(dir, "out.mp4")
	script := "#!/bin/sh\necho partial > \"" + out + "\"\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	err := ffmpeg.Run(context.Background(), stub, ffmpeg.Encode{Input: "in.mp4", Output: out})
	if err == nil {
		t.Fatal("expected encode failure")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("partial output should be removed, stat err: %v", statErr)
	}
}

func TestRunRejectsEmptyOutput(t *testing.T) {
	dir := t.TempDir()

	stub := filepath.Join(dir, "ffmpeg-stub")
	out := filepath.Join(dir, "out.mp4")
	script := "#!/bin/sh\n: > \"" + out + "\"\nexit 0\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	err := ffmpeg.Run(context.Background(), stub, ffmpeg.Encode{Input: "in.mp4", Output: out})
	if err == nil {
		t.Fatal("expected failure for empty output file")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("empty output should be removed, stat err: %v", statErr)
	}
}
