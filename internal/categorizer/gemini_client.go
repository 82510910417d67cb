package categorizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"rmoreira/extrato-csv/internal/logging"
)

// GeminiClient is the production LLMClient backed by the Gemini API. The
// underlying client is created lazily on the first call and reused afterwards.
type GeminiClient struct {
	apiKey  string
	model   string
	timeout time.Duration

	initOnce sync.Once
	client   *genai.Client
	initErr  error
}

// NewGeminiClient builds a client for the given model. The API key is
// validated on first use, not here, so construction never fails.
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
	}
}

// Generate sends a single prompt and returns the concatenated text of the
// first candidate. One request per prompt, no retries: a failed block is
// cheaper to categorize by regex than to ask again.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.initOnce.Do(func() {
		if c.apiKey == "" {
			c.initErr = fmt.Errorf("GEMINI_API_KEY environment variable not set")
			return
		}
		c.client, c.initErr = genai.NewClient(context.Background(), option.WithAPIKey(c.apiKey))
	})
	if c.initErr != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", c.initErr)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += fmt.Sprintf("%v", part)
	}

	log.WithField(logging.FieldModel, c.model).Debug("Received model response")
	return text, nil
}

// Close releases the underlying API client, if one was created.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
