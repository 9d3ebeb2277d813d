// Package signature validates signature captures and renders drawn strokes
// into PNG data URLs.
package signature

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/vector"

	"plume/internal/domain/entity"
)

const (
	PNGDataURLPrefix = "data:image/png;base64,"

	MaxTypedLength = 100

	DefaultWidth  = 500
	DefaultHeight = 200
	MaxWidth      = 2000
	MaxHeight     = 1000

	penWidth = 2.0

	// segments used to approximate the round pen tip
	capSegments = 12
)

var inkColor = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one pen-down to pen-up path
type Stroke []Point

// Capture is the payload submitted from the sign step
type Capture struct {
	Type    entity.SignatureType `json:"type"`
	Data    string               `json:"data,omitempty"`
	Strokes []Stroke             `json:"strokes,omitempty"`
	Width   int                  `json:"width,omitempty"`
	Height  int                  `json:"height,omitempty"`
}

// Normalize validates the capture and returns the value to store: the typed
// name for "type", a PNG data URL for "draw"
func Normalize(c Capture) (string, error) {
	switch c.Type {
	case entity.SignatureTypeType:
		return normalizeTyped(c.Data)
	case entity.SignatureTypeDraw:
		if c.Data != "" {
			if err := ValidateDataURL(c.Data); err != nil {
				return "", err
			}
			return c.Data, nil
		}
		if len(c.Strokes) == 0 {
			return "", fmt.Errorf("%w: signature is empty", entity.ErrInvalidInput)
		}
		return Rasterize(c.Strokes, c.Width, c.Height)
	default:
		return "", fmt.Errorf("%w: signature type must be draw or type", entity.ErrInvalidInput)
	}
}

func normalizeTyped(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return "", fmt.Errorf("%w: typed signature is empty", entity.ErrInvalidInput)
	}
	if n > MaxTypedLength {
		return "", fmt.Errorf("%w: typed signature exceeds %d characters", entity.ErrInvalidInput, MaxTypedLength)
	}
	return name, nil
}

// ValidateDataURL checks that s is a base64 PNG data URL that decodes
func ValidateDataURL(s string) error {
	if !strings.HasPrefix(s, PNGDataURLPrefix) {
		return fmt.Errorf("%w: signature must be a PNG data URL", entity.ErrInvalidInput)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s, PNGDataURLPrefix))
	if err != nil {
		return fmt.Errorf("%w: signature is not valid base64", entity.ErrInvalidInput)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: signature is not a PNG image", entity.ErrInvalidInput)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: signature image is empty", entity.ErrInvalidInput)
	}
	return nil
}

// Rasterize draws strokes onto a transparent canvas and returns a PNG data
// URL. Zero dimensions fall back to the default pad size.
func Rasterize(strokes []Stroke, width, height int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if width > MaxWidth || height > MaxHeight {
		return "", fmt.Errorf("%w: canvas larger than %dx%d", entity.ErrInvalidInput, MaxWidth, MaxHeight)
	}

	pad := &pen{r: vector.NewRasterizer(width, height), w: float64(width), h: float64(height)}
	points := 0
	for _, stroke := range strokes {
		for i, p := range stroke {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				return "", fmt.Errorf("%w: stroke point is not a number", entity.ErrInvalidInput)
			}
			points++
			pad.dot(p)
			if i > 0 {
				pad.segment(stroke[i-1], p)
			}
		}
	}
	if points == 0 {
		return "", fmt.Errorf("%w: signature is empty", entity.ErrInvalidInput)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	pad.r.Draw(img, img.Bounds(), image.NewUniform(inkColor), image.Point{})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode signature: %w", err)
	}

	return PNGDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// pen outlines strokes on the rasterizer, clamping to the canvas. All
// shapes are wound the same way so overlapping coverage adds up instead of
// cancelling out.
type pen struct {
	r    *vector.Rasterizer
	w, h float64
}

func (p *pen) moveTo(x, y float64) {
	p.r.MoveTo(float32(clamp(x, p.w)), float32(clamp(y, p.h)))
}

func (p *pen) lineTo(x, y float64) {
	p.r.LineTo(float32(clamp(x, p.w)), float32(clamp(y, p.h)))
}

func clamp(v, max float64) float64 {
	return math.Min(math.Max(v, 0), max)
}

func (p *pen) segment(a, b Point) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := penWidth / 2
	nx, ny := -dy/length*half, dx/length*half

	p.moveTo(a.X+nx, a.Y+ny)
	p.lineTo(b.X+nx, b.Y+ny)
	p.lineTo(b.X-nx, b.Y-ny)
	p.lineTo(a.X-nx, a.Y-ny)
	p.r.ClosePath()
}

func (p *pen) dot(at Point) {
	half := penWidth / 2
	for i := 0; i <= capSegments; i++ {
		angle := -2 * math.Pi * float64(i) / capSegments
		x := at.X + half*math.Cos(angle)
		y := at.Y + half*math.Sin(angle)
		if i == 0 {
			p.moveTo(x, y)
		} else {
			p.lineTo(x, y)
		}
	}
	p.r.ClosePath()
}
