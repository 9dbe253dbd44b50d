package genlang

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
)

// Client defaults.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel answers grounded queries on the first attempt.
	DefaultModel = "gemini-2.5-flash"

	// DefaultFallbackModel takes over on retries, trading quality for
	// capacity when the primary is overloaded.
	DefaultFallbackModel = "gemini-2.5-flash-lite"

	defaultTimeout = 2 * time.Minute

	// Conservative client-side limit, well under provider quotas.
	defaultRequestsPerSecond = 5.0
	defaultBurst             = 10
)

// Config configures the provider client.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string

	// Model is the primary generation model for grounded queries.
	Model string

	// FallbackModel is used on query retries. Empty disables fallback.
	FallbackModel string

	// RequestsPerSecond caps the sustained client-side request rate.
	RequestsPerSecond float64

	// Burst is the client-side burst allowance.
	Burst int
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.FallbackModel == "" {
		c.FallbackModel = DefaultFallbackModel
	}
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = defaultRequestsPerSecond
	}
	if c.Burst == 0 {
		c.Burst = defaultBurst
	}
	return c
}

// Ensure Client implements the provider ports.
var (
	_ driven.StoreProvider  = (*Client)(nil)
	_ driven.UploadProvider = (*Client)(nil)
	_ driven.QueryProvider  = (*Client)(nil)
)

// Client talks to the generative-language REST API.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	config  Config
}

// NewClient creates a provider client.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("genlang: API key is required")
	}
	config = config.withDefaults()

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetHeader("x-goog-api-key", config.APIKey).
		SetTimeout(defaultTimeout)

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		config:  config,
	}, nil
}

// newRequest waits for rate-limit headroom and builds a request.
func (c *Client) newRequest(ctx context.Context) (*resty.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.http.R().SetContext(ctx), nil
}

// asAPIError converts a non-2xx response into an *APIError.
func asAPIError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Status = envelope.Error.Status
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Message = resp.Status()
	}
	return apiErr
}
