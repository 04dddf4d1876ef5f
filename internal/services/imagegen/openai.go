package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/seed"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const seedInstruction = "You write prompts for an image party game. Reply with a single vivid scene " +
	"description under 25 words, no quotes, no preamble."

// OpenAIConfig configures the OpenAI backed generator
type OpenAIConfig struct {
	APIKey string

	// BaseURL overrides the API endpoint, mostly for tests and proxies
	BaseURL string

	ImageModel string
	ImageSize  string
	ChatModel  string

	// Composer supplies themes for the chat model and the fallback seed prompt
	Composer *seed.Composer
}

// OpenAI generates seed prompts with a chat model and images with an image model
type OpenAI struct {
	client     openai.Client
	imageModel string
	imageSize  string
	chatModel  string
	composer   *seed.Composer
}

// NewOpenAI creates a new OpenAI generator
func NewOpenAI(cfg *OpenAIConfig) (*OpenAI, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// The game layer owns retries
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	g := &OpenAI{
		client:     openai.NewClient(opts...),
		imageModel: cfg.ImageModel,
		imageSize:  cfg.ImageSize,
		chatModel:  cfg.ChatModel,
		composer:   cfg.Composer,
	}
	if g.imageModel == "" {
		g.imageModel = string(openai.ImageModelDallE3)
	}
	if g.imageSize == "" {
		g.imageSize = string(openai.ImageGenerateParamsSize1024x1024)
	}
	if g.chatModel == "" {
		g.chatModel = string(openai.ChatModelGPT4oMini)
	}
	if g.composer == nil {
		g.composer = seed.New(nil)
	}

	return g, nil
}

// GenerateSeedImage asks the chat model for a prompt and renders it
func (g *OpenAI) GenerateSeedImage(ctx context.Context) (*models.SeedImage, error) {
	prompt, err := g.seedPrompt(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Printf("Seed prompt from chat model failed, using composer: %v", err)
		prompt = g.composer.Compose()
	}

	image, err := g.GeneratePlayerImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.SeedImage{
		Prompt: prompt,
		Image:  image,
	}, nil
}

// GeneratePlayerImage renders prompt with the image model
func (g *OpenAI) GeneratePlayerImage(ctx context.Context, prompt string) (*models.Image, error) {
	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(g.imageModel),
		Size:           openai.ImageGenerateParamsSize(g.imageSize),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("image response contained no data")
	}

	data := resp.Data[0]
	switch {
	case data.B64JSON != "":
		raw, err := base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &models.Image{
			Ref:         digestRef(raw),
			Data:        data.B64JSON,
			ContentType: "image/png",
		}, nil
	case data.URL != "":
		return &models.Image{
			Ref: data.URL,
		}, nil
	default:
		return nil, errors.New("image response contained neither data nor url")
	}
}

func (g *OpenAI) seedPrompt(ctx context.Context) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(seedInstruction),
			openai.UserMessage("Theme: " + g.composer.Theme()),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion contained no choices")
	}

	prompt := strings.Trim(strings.TrimSpace(completion.Choices[0].Message.Content), `"`)
	if prompt == "" {
		return "", errors.New("chat completion was empty")
	}

	return prompt, nil
}
