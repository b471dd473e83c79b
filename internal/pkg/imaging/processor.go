package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
)

// Config for image processing
type Config struct {
	MaxWidth  int // Max width before downscaling (default 2400)
	MaxHeight int // Max height before downscaling (default 2400)
	Quality   int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:  2400,
		MaxHeight: 2400,
		Quality:   85,
	}
}

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	def := DefaultConfig()
	if config.MaxWidth <= 0 {
		config.MaxWidth = def.MaxWidth
	}
	if config.MaxHeight <= 0 {
		config.MaxHeight = def.MaxHeight
	}
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = def.Quality
	}
	return &Processor{config: config}
}

// Downscale shrinks JPEG and PNG images that exceed the configured bounds,
// keeping the aspect ratio and the original format. Other formats and
// images already within bounds are returned unchanged.
func (p *Processor) Downscale(data []byte, contentType string) ([]byte, bool, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return data, false, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= p.config.MaxWidth && cfg.Height <= p.config.MaxHeight {
		return data, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)

	out, err := p.encode(resized, format)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode image: %w", err)
	}
	return out, true, nil
}

// encode encodes image to bytes
func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
