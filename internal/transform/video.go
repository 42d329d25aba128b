package transform

import (
	"context"
	"errors"
	"fmt"

	"mediasim/internal/logging"
	"mediasim/internal/media"
	"mediasim/internal/media/ffmpeg"
	"mediasim/internal/profiles"
)

// videoFrameRate is the normalization target for every video profile.
const videoFrameRate = 30

// applyVideo shells out to ffmpeg with the profile's filter chain and
// bitrate envelope.
func (e *Engine) applyVideo(ctx context.Context, prof profiles.Profile, item media.Item, outPath string) error {
	if item.InMemory() {
		return errors.New("video payload must be materialized to disk before encoding")
	}

	encode := ffmpeg.Encode{
		Input:         item.SourcePath,
		Output:        outPath,
		Filters:       prof.Video.Filters,
		FrameRate:     videoFrameRate,
		Preset:        prof.Video.Preset,
		Bitrate:       prof.Video.Bitrate,
		MaxRate:       prof.Video.MaxRate,
		BufSize:       prof.Video.BufSize,
		AudioBitrate:  prof.Video.AudioBitrate,
		AudioChannels: prof.Video.AudioChannels,
		PixelFormat:   prof.Video.PixelFormat,
		StripMetadata: prof.StripMetadata,
		FastStart:     prof.Video.FastStart,
	}

	encodeCtx := ctx
	if e.ffmpegTimeout > 0 {
		var cancel context.CancelFunc
		encodeCtx, cancel = context.WithTimeout(ctx, e.ffmpegTimeout)
		defer cancel()
	}

	e.log.Debug("encoding video",
		logging.String("profile", prof.Name),
		logging.String("item", item.RelPath))
	if err := ffmpeg.Run(encodeCtx, e.ffmpegBinary, encode); err != nil {
		return fmt.Errorf("profile %q: %w", prof.Name, err)
	}
	return nil
}
