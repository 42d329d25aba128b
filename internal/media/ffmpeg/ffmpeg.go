package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Encode describes one ffmpeg transcode invocation.
type Encode struct {
	Input   string
	Output  string
	Filters []string
	// FrameRate appends an fps filter after Filters; 0 leaves the source
	// frame rate untouched.
	FrameRate     int
	VideoCodec    string
	Preset        string
	Bitrate       string
	MaxRate       string
	BufSize       string
	AudioCodec    string
	AudioBitrate  string
	AudioChannels int
	PixelFormat   string
	StripMetadata bool
	FastStart     bool
}

// Args renders the full ffmpeg argument list. Kept pure so encode plans can
// be asserted in tests without running the binary.
func (e Encode) Args() []string {
	args := []string{"-y", "-i", e.Input}

	filters := append([]string{}, e.Filters...)
	if e.FrameRate > 0 {
		filters = append(filters, "fps="+strconv.Itoa(e.FrameRate))
	}
	if len(filters) > 0 {
		args = append(args, "-vf", strings.Join(filters, ","))
	}

	codec := e.VideoCodec
	if codec == "" {
		codec = "libx264"
	}
	args = append(args, "-c:v", codec)
	if e.Preset != "" {
		args = append(args, "-preset", e.Preset)
	}
	if e.Bitrate != "" {
		args = append(args, "-b:v", e.Bitrate)
	}
	if e.MaxRate != "" {
		args = append(args, "-maxrate", e.MaxRate)
	}
	if e.BufSize != "" {
		args = append(args, "-bufsize", e.BufSize)
	}

	audioCodec := e.AudioCodec
	if audioCodec == "" {
		audioCodec = "aac"
	}
	args = append(args, "-c:a", audioCodec)
	if e.AudioBitrate != "" {
		args = append(args, "-b:a", e.AudioBitrate)
	}
	if e.AudioChannels > 0 {
		args = append(args, "-ac", strconv.Itoa(e.AudioChannels))
	}
	if e.PixelFormat != "" {
		args = append(args, "-pix_fmt", e.PixelFormat)
	}
	if e.StripMetadata {
		args = append(args, "-map_metadata", "-1")
	}
	if e.FastStart {
		args = append(args, "-movflags", "+faststart")
	}

	return append(args, e.Output)
}

// Run executes the encode with the given binary. The output file is removed
// on any failure so callers never observe a partial artifact.
func Run(ctx context.Context, binary string, encode Encode) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(encode.Input) == "" {
		return errors.New("ffmpeg encode: empty input path")
	}
	if strings.TrimSpace(encode.Output) == "" {
		return errors.New("ffmpeg encode: empty output path")
	}

	cmd := exec.CommandContext(ctx, binary, encode.Args()...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.Remove(encode.Output)
		return fmt.Errorf("ffmpeg encode: %w: %s", err, tail(string(output), 400))
	}

	info, err := os.Stat(encode.Output)
	if err != nil {
		return fmt.Errorf("ffmpeg encode: output missing: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(encode.Output)
		return errors.New("ffmpeg encode: output file is empty")
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
