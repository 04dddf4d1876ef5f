// Package imagegen produces the seed image for each round and one image per
// submitted prompt.
package imagegen

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/KirkDiggler/promptgen/internal/services/imagegen Generator

import (
	"context"

	"github.com/KirkDiggler/promptgen/internal/models"
)

// Generator turns prompts into images
type Generator interface {
	// GenerateSeedImage picks a seed prompt and renders it
	GenerateSeedImage(ctx context.Context) (*models.SeedImage, error)

	// GeneratePlayerImage renders a player's prompt
	GeneratePlayerImage(ctx context.Context, prompt string) (*models.Image, error)
}
