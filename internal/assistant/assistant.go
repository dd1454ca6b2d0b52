// Package assistant is the client for the generative-language API
// behind the supportive chat feature. It is deliberately decoupled
// from the ledgers: a failed call affects nothing but the reply text.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/haven-app/haven/internal/logger"
)

const defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"

// FallbackReply is returned whenever the API cannot produce a reply.
// The chat surface must always have something supportive to show.
const FallbackReply = "I'm here for you. I couldn't reach my usual resources just now, " +
	"but taking a few slow breaths can help in the moment. If you're struggling, " +
	"please consider reaching out to someone you trust."

const promptTemplate = "I want you to act as a mental health assistant. Provide supportive, " +
	"empathetic responses. Your goal is to listen, validate feelings, and offer general " +
	"mental health guidance. Never diagnose medical conditions or provide medical advice. " +
	"Keep responses concise (under 150 words). Context: The user asks: %q"

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the generative-language endpoint.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API endpoint (used by tests).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reply sends the user's message and returns the assistant's text.
// Every failure mode (missing key, transport error, non-2xx status,
// unexpected body) degrades to FallbackReply; Reply never returns an
// error because nothing upstream can do anything useful with one.
func (c *Client) Reply(ctx context.Context, message string) string {
	reply, err := c.generate(ctx, message)
	if err != nil {
		logger.Warn("Assistant request failed, using fallback reply", "error", err)
		return FallbackReply
	}
	return reply
}

func (c *Client) generate(ctx context.Context, message string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	body, err := json.Marshal(request{
		Contents: []content{
			{
				Role:  "user",
				Parts: []part{{Text: fmt.Sprintf(promptTemplate, message)}},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1024,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
