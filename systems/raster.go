package systems

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/numerals/components"
	"github.com/pthm-cable/numerals/config"
)

// Raster is the result of rendering text into a viewport-sized buffer.
type Raster struct {
	Text     string
	Width    int
	Height   int
	FontSize float64
	Homes    []components.Position // Sampled glyph pixels
	Image    *image.RGBA           // Kept for the ghost overlay; nil for empty viewports
}

// TextRasterizer renders text with a monospace face and samples it on a grid.
type TextRasterizer struct {
	cfg  config.RasterConfig
	font *opentype.Font

	// Face for the most recent size; resizes rarely reuse older sizes
	faceSize float64
	face     font.Face
}

// NewTextRasterizer parses the embedded Go Mono font.
func NewTextRasterizer(cfg config.RasterConfig) (*TextRasterizer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing monospace font: %w", err)
	}
	if cfg.SampleStep < 1 {
		cfg.SampleStep = 1
	}
	return &TextRasterizer{cfg: cfg, font: f}, nil
}

// Rasterize draws text centered in a w x h buffer and returns the home
// positions of every sampled glyph pixel. Empty text or an empty viewport
// yields no homes.
func (r *TextRasterizer) Rasterize(text string, w, h int) (*Raster, error) {
	out := &Raster{Text: text, Width: w, Height: h}
	if w <= 0 || h <= 0 {
		return out, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	out.Image = img

	if strings.TrimSpace(text) == "" {
		return out, nil
	}

	minDim := float64(min(w, h))
	margin := minDim * r.cfg.MarginFrac
	availW := float64(w) - margin*2

	size := math.Max(r.cfg.MinFontSize, minDim*r.cfg.TargetScale)
	face, err := r.faceFor(size)
	if err != nil {
		return nil, err
	}

	// One-shot fit: shrink proportionally when the text is too wide
	textW := fixedToFloat(font.MeasureString(face, text))
	if textW > availW && textW > 0 {
		size = math.Max(r.cfg.MinFontSize, size*(availW/textW))
		if face, err = r.faceFor(size); err != nil {
			return nil, err
		}
		textW = fixedToFloat(font.MeasureString(face, text))
	}
	out.FontSize = size

	// Center on the advance box horizontally and the ascent/descent box vertically
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	x := (float64(w) - textW) / 2
	baseline := float64(h)/2 + (ascent-descent)/2

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)},
	}
	d.DrawString(text)

	out.Homes = r.sample(img)
	return out, nil
}

// sample walks the buffer on the configured stride and keeps bright, opaque pixels.
func (r *TextRasterizer) sample(img *image.RGBA) []components.Position {
	step := r.cfg.SampleStep
	b := img.Bounds()
	var homes []components.Position

	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			sum := int(px[0]) + int(px[1]) + int(px[2])
			if px[3] > r.cfg.AlphaThreshold && sum > r.cfg.BrightThreshold {
				homes = append(homes, components.Position{X: float32(x), Y: float32(y)})
			}
		}
	}
	return homes
}

func (r *TextRasterizer) faceFor(size float64) (font.Face, error) {
	if r.face != nil && r.faceSize == size {
		return r.face, nil
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face at size %.1f: %w", size, err)
	}
	if r.face != nil {
		r.face.Close()
	}
	r.face = face
	r.faceSize = size
	return face, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
