// Package photo turns uploaded image bytes into data URIs the form can hold
// in memory.
package photo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
)

const (
	DefaultMaxBytes = 800 * 1024
	// MaxPixels bounds the decoded size; a tiny file can claim a huge canvas
	// in its header.
	MaxPixels = 24_000_000
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format, allowed PNG or JPEG")
	ErrTooLarge          = errors.New("image too large")
)

// Options tune the decoder. Zero values disable the respective limit.
type Options struct {
	MaxBytes     int
	MaxDimension int
}

// Decoder converts raw PNG/JPEG bytes to a data URI.
type Decoder struct {
	opts Options
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

// Hint is the upload help text for these limits.
func (o Options) Hint() string {
	if o.MaxBytes <= 0 {
		return "Allowed PNG or JPEG."
	}
	return fmt.Sprintf("Allowed PNG or JPEG. Max size of %s.", sizeLabel(o.MaxBytes))
}

func sizeLabel(n int) string {
	switch {
	case n >= 1024*1024 && n%(1024*1024) == 0:
		return fmt.Sprintf("%dM", n/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%dK", n/1024)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// Decode validates data and returns a data URI. Images within MaxDimension
// keep their original bytes; larger ones are downscaled and re-encoded as PNG.
func (d *Decoder) Decode(data []byte) (string, error) {
	if d.opts.MaxBytes > 0 && len(data) > d.opts.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, len(data), d.opts.MaxBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if format != "png" && format != "jpeg" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	// The header alone says nothing about the pixel data.
	img, err := decodeImage(data, format)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	slog.Debug("photo decoded", "format", format, "width", cfg.Width, "height", cfg.Height, "size", len(data))

	limit := d.opts.MaxDimension
	if limit <= 0 || (cfg.Width <= limit && cfg.Height <= limit) {
		return dataURI("image/"+format, data), nil
	}
	img = resizeToFit(img, limit, limit)

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	b := img.Bounds()
	slog.Debug("photo downscaled", "width", b.Dx(), "height", b.Dy(), "size", buf.Len())
	return dataURI("image/png", buf.Bytes()), nil
}

func decodeImage(data []byte, format string) (image.Image, error) {
	if format == "jpeg" {
		return jpeg.Decode(bytes.NewReader(data))
	}
	return png.Decode(bytes.NewReader(data))
}

// resizeToFit scales src to fit within maxW×maxH keeping the aspect ratio.
func resizeToFit(src image.Image, maxW, maxH int) image.Image {
	bw := src.Bounds().Dx()
	bh := src.Bounds().Dy()
	scale := math.Min(float64(maxW)/float64(bw), float64(maxH)/float64(bh))
	if scale >= 1.0 {
		return src
	}
	w := int(math.Max(1, math.Round(float64(bw)*scale)))
	h := int(math.Max(1, math.Round(float64(bh)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether ref holds an uploaded image rather than a path.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Describe summarises a photo reference for display: the path as-is, or the
// mime type and decoded size of a data URI.
func Describe(ref string) string {
	if !IsDataURI(ref) {
		return ref
	}
	head, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return "data URI"
	}
	mime := strings.TrimSuffix(head, ";base64")
	size := base64.StdEncoding.DecodedLen(len(payload))
	return fmt.Sprintf("%s, %.1f KB", mime, float64(size)/1024)
}
