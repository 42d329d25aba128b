package profiles

import (
	"fmt"
	"strings"

	"mediasim/internal/media"
)

// Applicability restricts a profile to a media kind.
type Applicability int

const (
	AppliesImage Applicability = iota
	AppliesVideo
	AppliesBoth
)

// Accepts reports whether the profile applies to the given media kind.
func (a Applicability) Accepts(kind media.Kind) bool {
	switch a {
	case AppliesImage:
		return kind == media.KindImage
	case AppliesVideo:
		return kind == media.KindVideo
	case AppliesBoth:
		return kind == media.KindImage || kind == media.KindVideo
	}
	return false
}

func (a Applicability) String() string {
	switch a {
	case AppliesImage:
		return "image"
	case AppliesVideo:
		return "video"
	case AppliesBoth:
		return "image+video"
	}
	return "none"
}

// ContainerPolicy selects the output container rule.
type ContainerPolicy int

const (
	// ContainerReencode re-encodes to a fixed container: JPEG for images,
	// MP4 for videos.
	ContainerReencode ContainerPolicy = iota
	// ContainerDocument passes the original bytes and extension through
	// unchanged.
	ContainerDocument
	// ContainerOriginal copies the unmodified item into originals/.
	ContainerOriginal
)

// ColorPolicy selects the color-space handling for image re-encodes.
type ColorPolicy int

const (
	// ColorPlainRGB converts decoded pixels to plain RGB.
	ColorPlainRGB ColorPolicy = iota
	// ColorManagedSRGB requests an ICC-aware conversion into the sRGB
	// working space. Go's decoders interpret samples as sRGB already, so
	// this degrades to the plain RGB path; the distinction is kept so the
	// catalog documents which platform performs the managed conversion.
	ColorManagedSRGB
)

// ResizeKind tags the resize rule variant.
type ResizeKind int

const (
	// ResizeNone leaves dimensions untouched.
	ResizeNone ResizeKind = iota
	// ResizeMaxEdge scales down so the larger dimension is at most MaxEdge.
	ResizeMaxEdge
	// ResizeAspectClampWidth center-crops the image into the
	// [MinAspect, MaxAspect] window, then scales to Width.
	ResizeAspectClampWidth
	// ResizeFillBox scales and center-crops to exactly Width x Height.
	ResizeFillBox
	// ResizeFitPad shrinks to fit within Width x Height (never upscales)
	// and letterboxes onto a black canvas of that size.
	ResizeFitPad
)

// ResizeRule carries the pixel targets for one resize variant. Only the
// fields relevant to Kind are set.
type ResizeRule struct {
	Kind      ResizeKind
	MaxEdge   int
	Width     int
	Height    int
	MinAspect float64
	MaxAspect float64
}

// VideoParams describes the ffmpeg encode a video profile performs. Filters
// are applied in order, before frame-rate normalization to 30fps.
type VideoParams struct {
	Filters       []string
	Preset        string
	Bitrate       string
	MaxRate       string
	BufSize       string
	AudioBitrate  string
	AudioChannels int
	PixelFormat   string
	FastStart     bool
}

// Profile is one immutable entry of the simulation catalog.
type Profile struct {
	Name          string
	Applies       Applicability
	Container     ContainerPolicy
	Color         ColorPolicy
	StripMetadata bool
	Resize        ResizeRule
	JPEGQuality   int
	Video         VideoParams
}

// IsDocument reports whether the profile passes bytes through unchanged.
func (p Profile) IsDocument() bool {
	return p.Container == ContainerDocument
}

// IsOriginal reports whether this is the unmodified-copy profile.
func (p Profile) IsOriginal() bool {
	return p.Container == ContainerOriginal
}

// OutputExt returns the extension of the artifact this profile produces for
// an input with the given original extension.
func (p Profile) OutputExt(originalExt string) string {
	switch p.Container {
	case ContainerDocument, ContainerOriginal:
		return strings.ToLower(originalExt)
	default:
		if media.KindForExt(originalExt) == media.KindVideo {
			return ".mp4"
		}
		return ".jpg"
	}
}

// OutputDir returns the directory name under the destination root that
// holds this profile's artifacts.
func (p Profile) OutputDir() string {
	if p.IsOriginal() {
		return "originals"
	}
	return p.Name
}

// catalog order is fixed; the ledger's one-hot columns depend on it.
var catalog = []Profile{
	{
		Name:          "facebook",
		Applies:       AppliesImage,
		Color:         ColorManagedSRGB,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 2048},
		JPEGQuality:   85,
	},
	{
		Name:          "instagram_feed",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeAspectClampWidth, Width: 1080, MinAspect: 0.8, MaxAspect: 1.91},
		JPEGQuality:   80,
		Video: VideoParams{
			Filters:      []string{"scale=1080:-2", "crop=1080:min(ih\\,1350):0:(ih-oh)/2"},
			Preset:       "fast",
			Bitrate:      "3500k",
			MaxRate:      "3500k",
			BufSize:      "3500k",
			AudioBitrate: "128k",
			AudioChannels: 2,
			FastStart:    true,
		},
	},
	{
		Name:          "instagram_story",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeFillBox, Width: 1080, Height: 1920},
		JPEGQuality:   80,
		Video: VideoParams{
			Filters:      []string{"scale=1080:-2", "crop=1080:1920:0:(ih-oh)/2"},
			Preset:       "fast",
			Bitrate:      "3000k",
			MaxRate:      "3000k",
			BufSize:      "3000k",
			AudioBitrate: "128k",
			AudioChannels: 1,
			FastStart:    true,
		},
	},
	{
		Name:          "instagram_reel",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeFillBox, Width: 1080, Height: 1920},
		JPEGQuality:   80,
		Video: VideoParams{
			Filters:      []string{"scale=1080:-2", "crop=1080:1920:0:(ih-oh)/2"},
			Preset:       "fast",
			Bitrate:      "3000k",
			MaxRate:      "3000k",
			BufSize:      "3000k",
			AudioBitrate: "128k",
			AudioChannels: 2,
			FastStart:    true,
		},
	},
	{
		Name:          "tiktok",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeFitPad, Width: 1080, Height: 1920},
		JPEGQuality:   85,
		Video: VideoParams{
			Filters: []string{
				"scale=1080:1920:force_original_aspect_ratio=decrease",
				"pad=1080:1920:(ow-iw)/2:(oh-ih)/2:black",
			},
			Preset:       "veryfast",
			Bitrate:      "2500k",
			MaxRate:      "2500k",
			BufSize:      "5000k",
			AudioBitrate: "128k",
			AudioChannels: 2,
			PixelFormat:  "yuv420p",
		},
	},
	{
		Name:          "whatsapp_standard_media",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 1600},
		JPEGQuality:   70,
		Video: VideoParams{
			Filters: []string{"scale=-2:480"},
			Bitrate: "1.5M",
		},
	},
	{
		Name:          "whatsapp_high_media",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 4096},
		JPEGQuality:   80,
		Video: VideoParams{
			Filters: []string{"scale=-2:720"},
			Bitrate: "3M",
		},
	},
	{
		Name:      "whatsapp_document",
		Applies:   AppliesBoth,
		Container: ContainerDocument,
	},
	{
		Name:          "signal_standard_media",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 1600},
		JPEGQuality:   80,
		Video: VideoParams{
			Filters: []string{"scale=-2:640"},
			Bitrate: "1.5M",
			MaxRate: "1.5M",
			BufSize: "3M",
		},
	},
	{
		Name:          "signal_high_media",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 4096},
		JPEGQuality:   80,
		// Signal's video path is quality-agnostic; both media profiles
		// encode identically.
		Video: VideoParams{
			Filters: []string{"scale=-2:640"},
			Bitrate: "1.5M",
			MaxRate: "1.5M",
			BufSize: "3M",
		},
	},
	{
		Name:      "signal_document",
		Applies:   AppliesBoth,
		Container: ContainerDocument,
	},
	{
		Name:          "telegram_media",
		Applies:       AppliesBoth,
		StripMetadata: true,
		Resize:        ResizeRule{Kind: ResizeMaxEdge, MaxEdge: 1280},
		JPEGQuality:   85,
		Video: VideoParams{
			Filters: []string{"scale=-2:720"},
			Bitrate: "1.8M",
			MaxRate: "1.8M",
			BufSize: "3.6M",
		},
	},
	{
		Name:      "telegram_document",
		Applies:   AppliesBoth,
		Container: ContainerDocument,
	},
	{
		Name:      "original",
		Applies:   AppliesBoth,
		Container: ContainerOriginal,
	},
}

var byName = func() map[string]int {
	index := make(map[string]int, len(catalog))
	for i, p := range catalog {
		index[p.Name] = i
	}
	return index
}()

// Catalog returns the full catalog in fixed order.
func Catalog() []Profile {
	out := make([]Profile, len(catalog))
	copy(out, catalog)
	return out
}

// Names returns the profile names in catalog order. This is the one-hot
// column vocabulary of the metadata ledger.
func Names() []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	return names
}

// Lookup resolves a profile by name.
func Lookup(name string) (Profile, error) {
	idx, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return catalog[idx], nil
}

// Index returns the catalog position of the named profile, or -1.
func Index(name string) int {
	idx, ok := byName[name]
	if !ok {
		return -1
	}
	return idx
}

// Resolve maps a list of names to profiles, preserving catalog order and
// rejecting unknown or duplicate names. An empty list selects the whole
// catalog.
func Resolve(names []string) ([]Profile, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if _, err := Lookup(trimmed); err != nil {
			return nil, err
		}
		if _, dup := seen[trimmed]; dup {
			return nil, fmt.Errorf("profile %q listed twice", trimmed)
		}
		seen[trimmed] = struct{}{}
	}
	selected := make([]Profile, 0, len(seen))
	for _, p := range catalog {
		if _, ok := seen[p.Name]; ok {
			selected = append(selected, p)
		}
	}
	return selected, nil
}
