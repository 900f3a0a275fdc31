package codes

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Generation limits. Content beyond maxContentLen exceeds QR capacity at the
// error-correction level used here.
const (
	maxContentLen = 2000
	minSize       = 64
	maxSize       = 1024
	defaultSize   = 256
)

var (
	ErrEmptyContent   = errors.New("content is required")
	ErrContentTooLong = fmt.Errorf("content must be at most %d characters", maxContentLen)
	ErrBadColor       = errors.New("colors must be hex values like #1a2b3c")
)

// Options tune the rendered code. Zero values fall back to defaults.
type Options struct {
	Size       int
	DarkColor  string
	LightColor string
}

// Generate renders content as a PNG QR code and returns it as a data URL.
// Synchronous; no job semantics involved.
func Generate(content string, opts Options) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}
	if len(content) > maxContentLen {
		return "", ErrContentTooLong
	}

	size := opts.Size
	if size == 0 {
		size = defaultSize
	}
	if size < minSize {
		size = minSize
	}
	if size > maxSize {
		size = maxSize
	}

	dark := color.RGBA{A: 255}
	light := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if opts.DarkColor != "" {
		c, err := parseHexColor(opts.DarkColor)
		if err != nil {
			return "", ErrBadColor
		}
		dark = c
	}
	if opts.LightColor != "" {
		c, err := parseHexColor(opts.LightColor)
		if err != nil {
			return "", ErrBadColor
		}
		light = c
	}

	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr encode failed: %w", err)
	}
	q.ForegroundColor = dark
	q.BackgroundColor = light

	png, err := q.PNG(size)
	if err != nil {
		return "", fmt.Errorf("qr render failed: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, ErrBadColor
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, ErrBadColor
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
