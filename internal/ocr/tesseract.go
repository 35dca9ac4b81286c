// Package ocr wraps Tesseract for receipt and scanned-statement
// recognition. Recognition variants trade recall against noise; callers
// run several and keep the best parse.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

// Variant names a recognition strategy.
type Variant string

const (
	// VariantMild lets Tesseract segment the page itself.
	VariantMild Variant = "mild"
	// VariantAggressive forces single-block segmentation, which digs
	// text out of low-contrast photos at the cost of extra garbage.
	VariantAggressive Variant = "aggressive"
	// VariantConservative assumes a single text column and drops
	// low-confidence noise, trading recall for precision.
	VariantConservative Variant = "conservative"
)

// Config holds Tesseract settings.
type Config struct {
	// TessdataPrefix points at the traineddata directory. Empty uses
	// the system default.
	TessdataPrefix string
	// Languages in priority order; receipts need ukr before eng.
	Languages []string
}

// DefaultConfig recognizes Ukrainian with an English fallback.
func DefaultConfig() Config {
	return Config{Languages: []string{"ukr", "eng"}}
}

// Client runs Tesseract over in-memory images. A fresh gosseract client
// per call keeps it safe for concurrent use.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

// NewClient builds an OCR client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultConfig().Languages
	}
	return &Client{cfg: cfg, logger: logger}
}

// Recognize runs one OCR pass over the image.
func (c *Client) Recognize(ctx context.Context, image []byte, variant Variant) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if c.cfg.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(c.cfg.TessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(c.cfg.Languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := applyVariant(client, variant); err != nil {
		return "", fmt.Errorf("apply variant %s: %w", variant, err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	c.logger.Debug("ocr pass complete",
		slog.String("variant", string(variant)),
		slog.Int("chars", len(text)))
	return text, nil
}

func applyVariant(client *gosseract.Client, variant Variant) error {
	switch variant {
	case VariantAggressive:
		return client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	case VariantConservative:
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
			return err
		}
		return client.SetVariable("tessedit_char_blacklist", "|~`^")
	case VariantMild, "":
		return client.SetPageSegMode(gosseract.PSM_AUTO)
	}
	return fmt.Errorf("unknown variant %q", variant)
}
