// Package provider calls OpenAI-compatible image generation APIs.
package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Environment variables consulted when Config leaves fields empty.
const (
	// EnvAPIKey holds the API key. OPENAI_API_KEY is honored as a
	// fallback so an already-configured OpenAI environment just works.
	EnvAPIKey = "MATTE_API_KEY"

	// EnvAPIBase overrides the API base URL, for proxies and
	// OpenAI-compatible providers.
	EnvAPIBase = "MATTE_API_BASE"
)

// Defaults for unset Config fields.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-image-1"
)

// maxResponseBytes bounds how much of an API response is read. A
// base64-encoded 1024x1024 PNG runs to a few megabytes; 64 MiB is far
// beyond anything a sane provider returns.
const maxResponseBytes = 64 << 20

// defaultHTTPTimeout is the hard cap on a single API call when the
// caller supplies no HTTP client of their own. Image generation is
// slow; one request can legitimately take a couple of minutes.
const defaultHTTPTimeout = 5 * time.Minute

// Config configures a Client. Every field is optional except that an
// API key must come from somewhere: the field or the environment.
type Config struct {
	// APIKey authenticates requests. Empty means consult EnvAPIKey,
	// then OPENAI_API_KEY.
	APIKey string

	// BaseURL is the API root, without the trailing slash, e.g.
	// "https://api.openai.com/v1". Empty means consult EnvAPIBase, then
	// DefaultBaseURL.
	BaseURL string

	// Model names the image model to request. Empty means DefaultModel.
	Model string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is a minimal client for the POST /images/generations endpoint
// of OpenAI-compatible APIs.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// New resolves cfg against the environment and builds a Client.
func New(cfg Config) (*Client, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(EnvAPIKey)
	}
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, fmt.Errorf("no API key configured: set %s or OPENAI_API_KEY", EnvAPIKey)
	}

	base := cfg.BaseURL
	if base == "" {
		base = os.Getenv(EnvAPIBase)
	}
	if base == "" {
		base = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  key,
		model:   model,
		httpc:   httpc,
	}, nil
}

// Model returns the model name requests will carry.
func (c *Client) Model() string {
	return c.model
}

// GenerateRequest describes one image to generate.
type GenerateRequest struct {
	// Prompt is the full rendering prompt, backdrop instructions
	// included. Must not be blank.
	Prompt string

	// Size is the provider-side render size as "WIDTHxHEIGHT", e.g.
	// "1024x1024". Empty lets the provider pick its default.
	Size string
}

type generationPayload struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size,omitempty"`
}

type generationResult struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate requests one image and returns its raw encoded bytes (PNG
// for current OpenAI models, but callers should decode by content, not
// assumption).
//
// Providers answer with either inline base64 data or a download URL
// depending on the model; both are handled here so callers never see
// the difference. The context governs the whole exchange, download
// included.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) ([]byte, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("prompt is empty")
	}

	payload, err := json.Marshal(generationPayload{
		Model:  c.model,
		Prompt: req.Prompt,
		N:      1,
		Size:   req.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("image API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Error.Message != "" {
			return nil, fmt.Errorf("image API error (%s): %s", resp.Status, ae.Error.Message)
		}
		return nil, fmt.Errorf("image API error (%s)", resp.Status)
	}

	var result generationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, errors.New("image API returned no images")
	}

	item := result.Data[0]
	switch {
	case item.B64JSON != "":
		img, err := base64.StdEncoding.DecodeString(item.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 image data: %w", err)
		}
		return img, nil
	case item.URL != "":
		return c.download(ctx, item.URL)
	default:
		return nil, errors.New("image API returned neither image data nor a URL")
	}
}

// download fetches a generated image from the URL variant of the API
// response.
func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed (%s)", resp.Status)
	}

	img, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read downloaded image: %w", err)
	}
	return img, nil
}
