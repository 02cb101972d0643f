// Package qr implements the render.ImageEncoder contract with scannable QR
// codes encoded as inline PNG data URIs, so markup stays self-contained and
// renderers need no asset plumbing for per-invoice codes.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/goliatone/go-invoicegen/pkg/render"
)

const defaultSize = 256

// Option configures the encoder before construction.
type Option func(*Encoder)

// WithSize overrides the generated image edge length in pixels.
func WithSize(size int) Option {
	return func(e *Encoder) {
		if size > 0 {
			e.size = size
		}
	}
}

// WithRecoveryLevel overrides the QR error-correction level.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(e *Encoder) {
		e.level = level
	}
}

// Encoder produces data:image/png;base64 references from string payloads.
type Encoder struct {
	size  int
	level qrcode.RecoveryLevel
}

// Ensure the implementation satisfies the public interface.
var _ render.ImageEncoder = (*Encoder)(nil)

// New constructs an Encoder applying any provided options.
func New(options ...Option) *Encoder {
	e := &Encoder{size: defaultSize, level: qrcode.Medium}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Encode renders the payload as a QR PNG and returns it as a data URI.
func (e *Encoder) Encode(payload string) (string, error) {
	if payload == "" {
		return "", errors.New("qr: payload is required")
	}
	png, err := qrcode.Encode(payload, e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("qr: encode payload: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
