package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/KirkDiggler/promptgen/internal/seed"
	"github.com/stretchr/testify/suite"
)

type fakeOpenAI struct {
	mu           sync.Mutex
	chatContent  string
	chatStatus   int
	imageStatus  int
	imageURLOnly bool
	prompts      []string
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/chat/completions"):
		if f.chatStatus != 0 {
			w.WriteHeader(f.chatStatus)
			_, _ = w.Write([]byte(`{"error":{"message":"chat unavailable","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": f.chatContent},
			}},
		})
	case strings.HasSuffix(r.URL.Path, "/images/generations"):
		var body struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.prompts = append(f.prompts, body.Prompt)

		if f.imageStatus != 0 {
			w.WriteHeader(f.imageStatus)
			_, _ = w.Write([]byte(`{"error":{"message":"content policy","type":"invalid_request_error"}}`))
			return
		}
		item := map[string]any{"b64_json": base64.StdEncoding.EncodeToString([]byte("png:" + body.Prompt))}
		if f.imageURLOnly {
			item = map[string]any{"url": "https://images.example/" + body.Prompt}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"created": 1,
			"data":    []map[string]any{item},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type OpenAITestSuite struct {
	suite.Suite
	fake      *fakeOpenAI
	server    *httptest.Server
	generator *OpenAI
}

func (s *OpenAITestSuite) SetupTest() {
	s.fake = &fakeOpenAI{chatContent: `"a lighthouse keeper juggling jellyfish"`}
	s.server = httptest.NewServer(s.fake)

	g, err := NewOpenAI(&OpenAIConfig{
		APIKey:   "test-key",
		BaseURL:  s.server.URL + "/",
		Composer: seed.New(&seed.Config{Seed: 5}),
	})
	s.Require().NoError(err)
	s.generator = g
}

func (s *OpenAITestSuite) TearDownTest() {
	s.server.Close()
}

func TestOpenAITestSuite(t *testing.T) {
	suite.Run(t, new(OpenAITestSuite))
}

func (s *OpenAITestSuite) TestNewRequiresKey() {
	_, err := NewOpenAI(&OpenAIConfig{})
	s.ErrorIs(err, ErrMissingAPIKey)

	_, err = New(Config{Provider: ProviderOpenAI})
	s.ErrorIs(err, ErrMissingAPIKey)
}

func (s *OpenAITestSuite) TestGeneratePlayerImage() {
	image, err := s.generator.GeneratePlayerImage(context.Background(), "a cat in a hat")
	s.Require().NoError(err)

	s.Equal(base64.StdEncoding.EncodeToString([]byte("png:a cat in a hat")), image.Data)
	s.Equal(digestRef([]byte("png:a cat in a hat")), image.Ref)
	s.Equal("image/png", image.ContentType)
}

func (s *OpenAITestSuite) TestGeneratePlayerImageURLOnly() {
	s.fake.imageURLOnly = true

	image, err := s.generator.GeneratePlayerImage(context.Background(), "fox")
	s.Require().NoError(err)
	s.Equal("https://images.example/fox", image.Ref)
	s.Empty(image.Data)
}

func (s *OpenAITestSuite) TestGeneratePlayerImageProviderError() {
	s.fake.imageStatus = http.StatusBadRequest

	_, err := s.generator.GeneratePlayerImage(context.Background(), "fox")
	s.Error(err)
}

func (s *OpenAITestSuite) TestGenerateSeedImageUsesChatPrompt() {
	seedImage, err := s.generator.GenerateSeedImage(context.Background())
	s.Require().NoError(err)

	s.Equal("a lighthouse keeper juggling jellyfish", seedImage.Prompt)
	s.Equal([]string{"a lighthouse keeper juggling jellyfish"}, s.fake.prompts)
}

func (s *OpenAITestSuite) TestGenerateSeedImageFallsBackToComposer() {
	s.fake.chatStatus = http.StatusInternalServerError

	seedImage, err := s.generator.GenerateSeedImage(context.Background())
	s.Require().NoError(err)

	s.NotEmpty(seedImage.Prompt)
	s.Require().Len(s.fake.prompts, 1)
	s.Equal(seedImage.Prompt, s.fake.prompts[0])
}

func (s *OpenAITestSuite) TestNewSelectsProvider() {
	g, err := New(Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k", OpenAIBaseURL: s.server.URL + "/"})
	s.Require().NoError(err)
	s.IsType(&OpenAI{}, g)

	g, err = New(Config{})
	s.Require().NoError(err)
	s.IsType(&Placeholder{}, g)

	_, err = New(Config{Provider: "midjourney"})
	s.Error(err)
}
