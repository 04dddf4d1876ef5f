package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/seed"
	"github.com/skip2/go-qrcode"
)

const placeholderSize = 256

// PlaceholderConfig configures the offline generator
type PlaceholderConfig struct {
	// Path is an image file served for every prompt; empty renders a QR code of the prompt
	Path string

	// Composer picks seed prompts
	Composer *seed.Composer
}

// Placeholder renders images without a remote provider
type Placeholder struct {
	composer    *seed.Composer
	data        []byte
	contentType string
}

// NewPlaceholder loads the configured image, if any
func NewPlaceholder(cfg *PlaceholderConfig) (*Placeholder, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	p := &Placeholder{
		composer: cfg.Composer,
	}
	if p.composer == nil {
		p.composer = seed.New(nil)
	}

	if cfg.Path != "" {
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read placeholder image: %w", err)
		}
		p.data = data
		p.contentType = http.DetectContentType(data)
	}

	return p, nil
}

// GenerateSeedImage composes a random prompt and renders it
func (p *Placeholder) GenerateSeedImage(ctx context.Context) (*models.SeedImage, error) {
	prompt := p.composer.Compose()

	image, err := p.GeneratePlayerImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.SeedImage{
		Prompt: prompt,
		Image:  image,
	}, nil
}

// GeneratePlayerImage returns the configured file or a QR code encoding the prompt
func (p *Placeholder) GeneratePlayerImage(ctx context.Context, prompt string) (*models.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, contentType := p.data, p.contentType
	if data == nil {
		png, err := qrcode.Encode(prompt, qrcode.Medium, placeholderSize)
		if err != nil {
			return nil, fmt.Errorf("failed to render placeholder: %w", err)
		}
		data, contentType = png, "image/png"
	}

	return &models.Image{
		Ref:         digestRef(data),
		Data:        base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}, nil
}
