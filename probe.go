package tokenprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// ErrMissingAPIKey is returned before any network activity when no API key
// could be resolved from the environment.
var ErrMissingAPIKey = errors.New("tokenprobe: missing OPENAI_API_KEY in environment")

// Endpoint selects which provider API variant to probe.
type Endpoint string

const (
	// EndpointResponses targets POST <base>/responses with an
	// instructions/input payload and a max_output_tokens limit.
	EndpointResponses Endpoint = "responses"

	// EndpointChat targets POST <base>/chat/completions with a messages
	// payload and a max_completion_tokens limit.
	EndpointChat Endpoint = "chat"
)

// Request describes a single probe. Fields are resolved once from flags and
// environment defaults and not mutated afterwards.
type Request struct {
	Endpoint     Endpoint
	Model        string
	BaseURL      string
	MaxTokens    int
	Input        string
	Instructions string
}

// URL joins the base URL with the endpoint's path suffix. Trailing slashes
// on the base are tolerated and never duplicated.
func (r *Request) URL() (string, error) {
	base := strings.TrimRight(r.BaseURL, "/")
	switch r.Endpoint {
	case EndpointResponses:
		return base + "/responses", nil
	case EndpointChat:
		return base + "/chat/completions", nil
	default:
		return "", fmt.Errorf("tokenprobe: unsupported endpoint: %q", r.Endpoint)
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesPayload struct {
	Model           string `json:"model"`
	Instructions    string `json:"instructions"`
	Input           string `json:"input"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

type chatPayload struct {
	Model               string    `json:"model"`
	Messages            []message `json:"messages"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
}

// Payload encodes the request body for the selected endpoint. Each variant
// carries exactly one token-limit field, named the way that endpoint
// expects it.
func (r *Request) Payload() ([]byte, error) {
	switch r.Endpoint {
	case EndpointResponses:
		return json.Marshal(responsesPayload{
			Model:           r.Model,
			Instructions:    r.Instructions,
			Input:           r.Input,
			MaxOutputTokens: r.MaxTokens,
		})
	case EndpointChat:
		return json.Marshal(chatPayload{
			Model: r.Model,
			Messages: []message{
				{Role: "system", Content: r.Instructions},
				{Role: "user", Content: r.Input},
			},
			MaxCompletionTokens: r.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("tokenprobe: unsupported endpoint: %q", r.Endpoint)
	}
}

// Result is the provider's response, read fully into memory whatever the
// status code.
type Result struct {
	Status     string // e.g. "200 OK"
	StatusCode int
	Body       []byte
}

// StatusError reports an HTTP error status from the provider. The body is
// still available for printing.
type StatusError struct {
	Status     string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tokenprobe: HTTP %s", e.Status)
}

// HTTPDoer is the subset of *http.Client that the probe needs. Tests swap
// in fakes through WithHTTPClient.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc HTTPDoer) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// New creates a probe client authenticating with the given bearer token.
func New(log *slog.Logger, apiKey string, options ...Option) *Client {
	c := &Client{
		log:    log,
		apiKey: apiKey,
		hc:     http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Client issues probe requests against a provider API.
type Client struct {
	log    *slog.Logger
	apiKey string
	hc     HTTPDoer
}

// Send issues one blocking POST and returns whatever came back. HTTP error
// statuses are not treated as transport failures: the full body is read and
// returned either way so the caller can print it verbatim.
func (c *Client) Send(ctx context.Context, req *Request) (*Result, error) {
	url, err := req.URL()
	if err != nil {
		return nil, err
	}
	payload, err := req.Payload()
	if err != nil {
		return nil, err
	}
	c.log.Debug("tokenprobe: sending request", "url", url, "model", req.Model, "max_tokens", req.MaxTokens)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tokenprobe: building request: %w", err)
	}
	hr.Header.Set("Authorization", "Bearer "+c.apiKey)
	hr.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("tokenprobe: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("tokenprobe: reading response body: %w", err)
	}

	return &Result{
		Status:     res.Status,
		StatusCode: res.StatusCode,
		Body:       body,
	}, nil
}
