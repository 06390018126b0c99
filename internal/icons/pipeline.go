// Package icons normalizes uploaded category icons. Raster uploads
// (webp, avif) are decoded, resampled onto a fixed 64x64 transparent
// canvas and re-encoded; SVG uploads are stored verbatim.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

var (
	// ErrNoFile means no file content was received.
	ErrNoFile = errors.New("no file provided")

	// ErrTransport means the transfer itself failed (partial, oversized
	// or aborted upload reported by the transport layer).
	ErrTransport = errors.New("upload transport error")

	// ErrInvalidExtension means the filename extension is outside the
	// webp/svg/avif allow-list.
	ErrInvalidExtension = errors.New("invalid file extension")

	// ErrInvalidContentType means the sniffed content does not match the
	// declared extension.
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrUnsupportedImage means the codec could not decode the upload.
	// Terminal for the request; never retried.
	ErrUnsupportedImage = errors.New("unsupported image environment")

	// ErrWrite means the normalized file did not land on disk.
	ErrWrite = errors.New("icon write error")
)

const (
	// canvasSize is the fixed edge length of normalized raster icons.
	canvasSize = 64

	// encodeQuality is the fixed re-encode quality for raster output.
	encodeQuality = 90
)

// allowedExt maps the extension allow-list to expected media types.
var allowedExt = map[string]string{
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
}

// Upload is a fully buffered file received from the form boundary.
// Err carries a transfer-level failure reported by the receiver.
type Upload struct {
	Filename string
	Data     []byte
	Err      error
}

// Pipeline validates, normalizes and stores icon uploads.
type Pipeline struct{}

// NewPipeline returns an icon pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Ingest validates up and writes the normalized icon into dir, returning
// the generated filename. The caller owns deleting any file the new one
// replaces.
func (p *Pipeline) Ingest(up *Upload, dir string) (string, error) {
	if up == nil || (len(up.Data) == 0 && up.Err == nil) {
		return "", ErrNoFile
	}
	if up.Err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, up.Err)
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	want, ok := allowedExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	if err := sniffContent(up.Data, ext, want); err != nil {
		return "", err
	}

	var out []byte
	if ext == ".svg" {
		// Vector input is stored byte-for-byte; no rasterization.
		out = up.Data
	} else {
		src, err := decodeRaster(up.Data, ext)
		if err != nil {
			return "", err
		}
		canvas := rasterize(src)
		out, err = encodeRaster(canvas, ext)
		if err != nil {
			return "", err
		}
	}

	name := generateFilename(ext)
	if err := writeAtomic(filepath.Join(dir, name), out); err != nil {
		return "", err
	}
	return name, nil
}

// generateFilename produces a collision-resistant name preserving ext.
func generateFilename(ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "sport_" + id + ext
}

// decodeRaster decodes webp or avif bytes. A codec failure is a terminal
// environment error, not a retry case.
func decodeRaster(data []byte, ext string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	switch ext {
	case ".webp":
		img, err = webp.Decode(bytes.NewReader(data))
	case ".avif":
		img, err = avif.Decode(bytes.NewReader(data))
	default:
		err = fmt.Errorf("no raster codec for %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnsupportedImage, ext, err)
	}
	return img, nil
}

// rasterize resamples src onto a 64x64 canvas with a transparent
// background, preserving aspect ratio and centering the result.
func rasterize(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	scale := math.Min(
		float64(canvasSize)/float64(sb.Dx()),
		float64(canvasSize)/float64(sb.Dy()),
	)
	w := int(math.Round(float64(sb.Dx()) * scale))
	h := int(math.Round(float64(sb.Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x0 := (canvasSize - w) / 2
	y0 := (canvasSize - h) / 2

	target := image.Rect(x0, y0, x0+w, y0+h)
	xdraw.CatmullRom.Scale(dst, target, src, sb, xdraw.Over, nil)
	return dst
}

// encodeRaster re-encodes the canvas in the upload's original format at
// the fixed quality level.
func encodeRaster(img image.Image, ext string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch ext {
	case ".webp":
		err = webp.Encode(&buf, img, webp.Options{Quality: encodeQuality})
	case ".avif":
		err = avif.Encode(&buf, img, avif.Options{Quality: encodeQuality, QualityAlpha: encodeQuality})
	default:
		err = fmt.Errorf("no raster codec for %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrUnsupportedImage, ext, err)
	}
	return buf.Bytes(), nil
}

// writeAtomic writes data via a temp file and rename, sets the final
// file world-readable, and verifies it landed.
func writeAtomic(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".icon-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Chmod(dst, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("%w: file missing after write: %v", ErrWrite, err)
	}
	return nil
}
