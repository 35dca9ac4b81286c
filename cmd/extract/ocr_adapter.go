package main

import (
	"context"

	"github.com/okushnir/kopiyka/internal/domain/receipt"
	"github.com/okushnir/kopiyka/internal/ocr"
)

// statementOCRAdapter adapts ocr.Client to parser.OCREngine. Scanned
// statement pages get the default segmentation.
type statementOCRAdapter struct {
	client *ocr.Client
}

func newStatementOCRAdapter(client *ocr.Client) *statementOCRAdapter {
	return &statementOCRAdapter{client: client}
}

// Recognize implements parser.OCREngine.
func (a *statementOCRAdapter) Recognize(ctx context.Context, image []byte) (string, error) {
	return a.client.Recognize(ctx, image, ocr.VariantMild)
}

// receiptOCRAdapter adapts ocr.Client to receipt.Engine, mapping each
// receipt pass onto a recognition variant.
type receiptOCRAdapter struct {
	client *ocr.Client
}

func newReceiptOCRAdapter(client *ocr.Client) *receiptOCRAdapter {
	return &receiptOCRAdapter{client: client}
}

// Recognize implements receipt.Engine.
func (a *receiptOCRAdapter) Recognize(ctx context.Context, image []byte, pass receipt.Pass) (string, error) {
	variant := ocr.VariantMild
	switch pass {
	case receipt.PassAggressive:
		variant = ocr.VariantAggressive
	case receipt.PassConservative:
		variant = ocr.VariantConservative
	}
	return a.client.Recognize(ctx, image, variant)
}
