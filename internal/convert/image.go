package convert

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Image strategies. One entry per source/target pair; the bodies share a
// helper but each pair stays an independent strategy so the dispatch table
// remains a flat, explicit matrix.

func (c *Converter) pngToJPG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".jpg")
}

func (c *Converter) pngToGIF(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".gif")
}

func (c *Converter) pngToBMP(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".bmp")
}

func (c *Converter) jpgToPNG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".png")
}

func (c *Converter) jpgToGIF(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".gif")
}

func (c *Converter) jpgToBMP(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".bmp")
}

func (c *Converter) gifToPNG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".png")
}

func (c *Converter) gifToJPG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".jpg")
}

func (c *Converter) gifToBMP(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".bmp")
}

func (c *Converter) bmpToPNG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".png")
}

func (c *Converter) bmpToJPG(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".jpg")
}

func (c *Converter) bmpToGIF(ctx context.Context, req Request) (Result, error) {
	return c.convertImage(req, ".gif")
}

// convertImage decodes the staged input and re-encodes it under a freshly
// allocated name with the target extension.
func (c *Converter) convertImage(req Request, targetExt string) (Result, error) {
	img, err := imaging.Open(req.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("image decode failed: %w", err)
	}

	out := c.store.Allocate(targetExt)
	if err := imaging.Save(img, out, imaging.JPEGQuality(90)); err != nil {
		c.store.Delete(out)
		return Result{}, fmt.Errorf("image encode failed: %w", err)
	}

	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}
