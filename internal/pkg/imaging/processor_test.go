package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDownscaleLargePNG(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 40, MaxHeight: 40})
	out, changed, err := p.Downscale(encodePNG(t, 100, 50), "image/png")
	if err != nil {
		t.Fatalf("Downscale: %v", err)
	}
	if !changed {
		t.Fatalf("expected image to be resized")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if format != "png" {
		t.Fatalf("expected png output, got %s", format)
	}
	if cfg.Width != 40 || cfg.Height != 20 {
		t.Fatalf("expected 40x20, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDownscaleKeepsSmallImage(t *testing.T) {
	p := NewProcessor(Config{MaxWidth: 40, MaxHeight: 40})
	in := encodePNG(t, 10, 10)
	out, changed, err := p.Downscale(in, "image/png")
	if err != nil {
		t.Fatalf("Downscale: %v", err)
	}
	if changed || !bytes.Equal(in, out) {
		t.Fatalf("expected image untouched")
	}
}

func TestDownscaleSkipsOtherFormats(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	in := []byte("GIF89a....")
	out, changed, err := p.Downscale(in, "image/gif")
	if err != nil || changed || !bytes.Equal(in, out) {
		t.Fatalf("expected passthrough, changed=%v err=%v", changed, err)
	}
}

func TestDownscaleCorruptImage(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	if _, _, err := p.Downscale([]byte("not a png"), "image/png"); err == nil {
		t.Fatalf("expected decode error")
	}
}
