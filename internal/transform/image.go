package transform

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	// webp inputs decode through image.Decode; imaging pulls in the
	// remaining raster codecs (jpeg, png, gif, tiff, bmp) itself.
	_ "golang.org/x/image/webp"

	"mediasim/internal/logging"
	"mediasim/internal/media"
	"mediasim/internal/profiles"
)

// applyImage decodes, resizes per the profile rule, and re-encodes to JPEG
// at the profile quality. Re-encoding through a fresh pixel buffer strips
// all source metadata, satisfying the strip policy.
func (e *Engine) applyImage(prof profiles.Profile, item media.Item, outPath string) error {
	in, err := item.Open()
	if err != nil {
		return fmt.Errorf("open %q: %w", item.RelPath, err)
	}
	defer in.Close()

	src, err := imaging.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %q: %w", item.RelPath, err)
	}

	// Both color policies land in an 8-bit RGB working buffer. Stdlib
	// decoders already interpret samples as sRGB, so the managed-sRGB
	// policy degrades to the same conversion here.
	img := resizeImage(prof.Resize, src)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(prof.JPEGQuality)); err != nil {
		_ = out.Close()
		_ = os.Remove(outPath)
		return fmt.Errorf("encode %q: %w", item.RelPath, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(outPath)
		return err
	}

	bounds := img.Bounds()
	e.log.Debug("image transformed",
		logging.String("profile", prof.Name),
		logging.String("item", item.RelPath),
		logging.Int("width", bounds.Dx()),
		logging.Int("height", bounds.Dy()))
	return nil
}

// resizeImage applies one catalog resize rule. The pixel arithmetic mirrors
// the platform behavior each rule approximates: truncating scale for
// max-edge rules, center crops for aspect clamping.
func resizeImage(rule profiles.ResizeRule, src image.Image) *image.NRGBA {
	switch rule.Kind {
	case profiles.ResizeMaxEdge:
		return resizeMaxEdge(src, rule.MaxEdge)
	case profiles.ResizeAspectClampWidth:
		return resizeAspectClampWidth(src, rule)
	case profiles.ResizeFillBox:
		return imaging.Fill(src, rule.Width, rule.Height, imaging.Center, imaging.Lanczos)
	case profiles.ResizeFitPad:
		return resizeFitPad(src, rule.Width, rule.Height)
	default:
		return imaging.Clone(src)
	}
}

func resizeMaxEdge(src image.Image, maxEdge int) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxEdge {
		return imaging.Clone(src)
	}
	scale := float64(maxEdge) / float64(longest)
	return imaging.Resize(src, int(float64(w)*scale), int(float64(h)*scale), imaging.Lanczos)
}

func resizeAspectClampWidth(src image.Image, rule profiles.ResizeRule) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	aspect := float64(w) / float64(h)

	img := imaging.Clone(src)
	switch {
	case aspect < rule.MinAspect:
		// Too tall: crop height down to the minimum aspect, centered.
		newH := int(float64(w) / rule.MinAspect)
		top := (h - newH) / 2
		img = imaging.Crop(img, image.Rect(0, top, w, top+newH))
	case aspect > rule.MaxAspect:
		// Too wide: crop width down to the maximum aspect, centered.
		newW := int(float64(h) * rule.MaxAspect)
		left := (w - newW) / 2
		img = imaging.Crop(img, image.Rect(left, 0, left+newW, h))
	}

	cropped := img.Bounds()
	newH := int(float64(rule.Width) / float64(cropped.Dx()) * float64(cropped.Dy()))
	return imaging.Resize(img, rule.Width, newH, imaging.Lanczos)
}

func resizeFitPad(src image.Image, width, height int) *image.NRGBA {
	bounds := src.Bounds()
	fitted := imaging.Clone(src)
	if bounds.Dx() > width || bounds.Dy() > height {
		fitted = imaging.Fit(src, width, height, imaging.Lanczos)
	}
	canvas := imaging.New(width, height, color.NRGBA{0, 0, 0, 255})
	return imaging.PasteCenter(canvas, fitted)
}
