package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTogetherURL = "https://api.together.xyz/v1/chat/completions"
	defaultHFURL       = "https://api-inference.huggingface.co/models/meta-llama/Llama-3.1-8B-Instruct"

	togetherModel = "meta-llama/Llama-3.1-8B-Instruct-Turbo"
)

// ErrNoProvider is returned when no API key is configured or every provider
// failed. Callers substitute the fixed fallback text; this error never
// reaches a user.
var ErrNoProvider = errors.New("no AI API keys configured or all providers failed")

// Config carries the provider credentials and endpoint overrides (the
// overrides exist for tests).
type Config struct {
	TogetherAPIKey string
	HFAPIKey       string
	TogetherURL    string
	HFURL          string
	Timeout        time.Duration
}

// LlamaClient generates free text through Together AI, falling back to the
// Hugging Face inference API when Together is unavailable.
type LlamaClient struct {
	togetherKey string
	hfKey       string
	togetherURL string
	hfURL       string
	http        *http.Client
}

func NewLlamaClient(cfg Config) *LlamaClient {
	if cfg.TogetherURL == "" {
		cfg.TogetherURL = defaultTogetherURL
	}
	if cfg.HFURL == "" {
		cfg.HFURL = defaultHFURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &LlamaClient{
		togetherKey: cfg.TogetherAPIKey,
		hfKey:       cfg.HFAPIKey,
		togetherURL: cfg.TogetherURL,
		hfURL:       cfg.HFURL,
		http:        &http.Client{Timeout: cfg.Timeout},
	}
}

// Complete sends the prompt to the first available provider and returns the
// generated text. Provider errors are logged and swallowed so the next
// provider gets a chance; only a total miss is reported.
func (c *LlamaClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.togetherKey != "" {
		text, err := c.completeTogether(ctx, prompt, maxTokens)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			log.WithError(err).Warn("Together AI request failed, trying fallback provider")
		}
	}

	if c.hfKey != "" {
		text, err := c.completeHF(ctx, prompt, maxTokens)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			log.WithError(err).Warn("Hugging Face request failed")
		}
	}

	return "", ErrNoProvider
}

type togetherRequest struct {
	Model       string            `json:"model"`
	Messages    []togetherMessage `json:"messages"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
}

type togetherMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type togetherResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *LlamaClient) completeTogether(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload := togetherRequest{
		Model:       togetherModel,
		Messages:    []togetherMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.togetherURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.togetherKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("together ai: unexpected status %d", resp.StatusCode)
	}

	var parsed togetherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("together ai: malformed response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfResponse []struct {
	GeneratedText string `json:"generated_text"`
}

func (c *LlamaClient) completeHF(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   maxTokens,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.hfURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.hfKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hugging face: unexpected status %d", resp.StatusCode)
	}

	var parsed hfResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("hugging face: malformed response: %w", err)
	}

	if len(parsed) == 0 {
		return "", nil
	}
	return parsed[0].GeneratedText, nil
}
