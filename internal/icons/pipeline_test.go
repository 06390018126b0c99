package icons

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

const svgSample = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10"/></svg>`

// pngHeader is enough for the sniffer to positively identify PNG.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newPipeline() *Pipeline { return NewPipeline() }

func TestIngest_NoFile(t *testing.T) {
	p := newPipeline()

	if _, err := p.Ingest(nil, t.TempDir()); !errors.Is(err, ErrNoFile) {
		t.Errorf("nil upload: err = %v, want ErrNoFile", err)
	}
	if _, err := p.Ingest(&Upload{Filename: "a.webp"}, t.TempDir()); !errors.Is(err, ErrNoFile) {
		t.Errorf("empty upload: err = %v, want ErrNoFile", err)
	}
}

func TestIngest_TransportError(t *testing.T) {
	p := newPipeline()
	up := &Upload{Filename: "a.webp", Err: errors.New("connection reset")}

	if _, err := p.Ingest(up, t.TempDir()); !errors.Is(err, ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestIngest_InvalidExtension(t *testing.T) {
	p := newPipeline()

	// A .png is rejected on extension alone, regardless of content.
	for _, name := range []string{"icon.png", "icon.jpg", "icon", "icon.webp.exe"} {
		up := &Upload{Filename: name, Data: pngHeader}
		if _, err := p.Ingest(up, t.TempDir()); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("%s: err = %v, want ErrInvalidExtension", name, err)
		}
	}
}

func TestIngest_ExtensionCaseInsensitive(t *testing.T) {
	p := newPipeline()
	up := &Upload{Filename: "ICON.SVG", Data: []byte(svgSample)}

	name, err := p.Ingest(up, t.TempDir())
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !strings.HasSuffix(name, ".svg") {
		t.Errorf("stored name = %q, want .svg suffix", name)
	}
}

func TestIngest_ContentTypeMismatch(t *testing.T) {
	p := newPipeline()

	// PNG bytes behind a .webp name must be rejected by sniffing.
	up := &Upload{Filename: "icon.webp", Data: pngHeader}
	if _, err := p.Ingest(up, t.TempDir()); !errors.Is(err, ErrInvalidContentType) {
		t.Errorf("err = %v, want ErrInvalidContentType", err)
	}
}

func TestIngest_SVGStoredVerbatim(t *testing.T) {
	p := newPipeline()
	dir := t.TempDir()
	up := &Upload{Filename: "ball.svg", Data: []byte(svgSample)}

	name, err := p.Ingest(up, dir)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !strings.HasPrefix(name, "sport_") || !strings.HasSuffix(name, ".svg") {
		t.Errorf("stored name = %q, want sport_*.svg", name)
	}

	stored, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(stored, []byte(svgSample)) {
		t.Error("SVG not stored byte-identical to upload")
	}
}

func TestIngest_WebpNormalizedTo64x64(t *testing.T) {
	p := newPipeline()
	dir := t.TempDir()

	// A 100x40 source exercises both the downscale and the centering.
	src := image.NewRGBA(image.Rect(0, 0, 100, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, webp.Options{Quality: 90}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	name, err := p.Ingest(&Upload{Filename: "ball.webp", Data: buf.Bytes()}, dir)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !strings.HasSuffix(name, ".webp") {
		t.Errorf("stored name = %q, want .webp suffix", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	out, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode stored icon: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("stored icon is %dx%d, want 64x64", b.Dx(), b.Dy())
	}

	// The source is wider than tall; the top rows of the canvas are
	// transparent padding. Allow a little slack for lossy alpha.
	_, _, _, a := out.At(32, 0).RGBA()
	if a > 0x0fff {
		t.Errorf("expected transparent padding at top edge, alpha = %d", a)
	}
	_, _, _, a = out.At(32, 32).RGBA()
	if a < 0xf000 {
		t.Errorf("expected opaque content at canvas center, alpha = %d", a)
	}
}

func TestIngest_AvifNormalizedTo64x64(t *testing.T) {
	p := newPipeline()
	dir := t.TempDir()

	src := image.NewRGBA(image.Rect(0, 0, 100, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			src.Set(x, y, color.RGBA{R: 30, G: 30, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := avif.Encode(&buf, src, avif.Options{Quality: 90, QualityAlpha: 90}); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	name, err := p.Ingest(&Upload{Filename: "ball.avif", Data: buf.Bytes()}, dir)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !strings.HasSuffix(name, ".avif") {
		t.Errorf("stored name = %q, want .avif suffix", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	out, err := avif.Decode(f)
	if err != nil {
		t.Fatalf("decode stored icon: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("stored icon is %dx%d, want 64x64", b.Dx(), b.Dy())
	}
	_, _, _, a := out.At(32, 32).RGBA()
	if a < 0xf000 {
		t.Errorf("expected opaque content at canvas center, alpha = %d", a)
	}
}

func TestIngest_AvifGenericSniffThenDecodeFailure(t *testing.T) {
	p := newPipeline()

	// Plain text sniffs as a generic type, which the .avif allow-list
	// accepts; the codec then fails, so the error must be the decode
	// classification, not a content-type rejection.
	up := &Upload{Filename: "ball.avif", Data: []byte("definitely not an image payload")}
	_, err := p.Ingest(up, t.TempDir())
	if errors.Is(err, ErrInvalidContentType) {
		t.Fatalf("generic sniff result must not reject avif: %v", err)
	}
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("err = %v, want ErrUnsupportedImage", err)
	}
}

func TestIngest_FilePermissions(t *testing.T) {
	p := newPipeline()
	dir := t.TempDir()

	name, err := p.Ingest(&Upload{Filename: "ball.svg", Data: []byte(svgSample)}, dir)
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("file mode = %o, want 644", perm)
	}
}

func TestIngest_UniqueNames(t *testing.T) {
	p := newPipeline()
	dir := t.TempDir()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		name, err := p.Ingest(&Upload{Filename: "ball.svg", Data: []byte(svgSample)}, dir)
		if err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
		if seen[name] {
			t.Fatalf("duplicate generated name %q", name)
		}
		seen[name] = true
	}
}

func TestIngest_WriteError(t *testing.T) {
	p := newPipeline()

	_, err := p.Ingest(
		&Upload{Filename: "ball.svg", Data: []byte(svgSample)},
		filepath.Join(t.TempDir(), "does", "not", "exist"),
	)
	if !errors.Is(err, ErrWrite) {
		t.Errorf("err = %v, want ErrWrite", err)
	}
}
