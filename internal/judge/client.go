package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client is the judgment boundary: given a photo and a rubric it returns the
// raw text of the model's verdict. Implementations make no local state
// changes, so a test double can stand in with zero coupling.
type Client interface {
	Assess(ctx context.Context, photo []byte, activityDescription, rubric string) (string, error)
	GenerateActivities(ctx context.Context, req GenerateRequest) ([]GeneratedActivity, error)
}

// GenerateRequest describes an activity-generation call
type GenerateRequest struct {
	Category string
	AgeMin   int
	AgeMax   int
	Location string
	Count    int
}

// GeneratedActivity is one activity draft produced by the text model
type GeneratedActivity struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rubric      string `json:"rubric"`
	Location    string `json:"location"`
}

// Config holds the judge provider settings. Credentials and model identifiers
// are passed explicitly rather than read from ambient process state.
type Config struct {
	BaseURL     string
	APIKey      string
	VisionModel string
	TextModel   string
	Timeout     time.Duration
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint
// (Groq-hosted models in production)
type HTTPClient struct {
	baseURL     string
	apiKey      string
	visionModel string
	textModel   string
	timeout     time.Duration
	httpClient  *http.Client
}

// New creates a judge client from explicit configuration
func New(cfg Config) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("judge: base URL required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &HTTPClient{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		visionModel: cfg.VisionModel,
		textModel:   cfg.TextModel,
		timeout:     timeout,
		httpClient:  &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom client.
func NewWithHTTPClient(cfg Config, httpClient *http.Client) (*HTTPClient, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c, nil
}

// ---------------- Chat Completions wire types ----------------

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentPart for vision
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Assess sends the photo and rubric to the vision model and returns the raw
// verdict text. The caller normalizes it via ParseVerdict.
func (c *HTTPClient) Assess(ctx context.Context, photo []byte, activityDescription, rubric string) (string, error) {
	if len(photo) == 0 {
		return "", errors.New("judge: empty photo payload")
	}
	if strings.TrimSpace(activityDescription) == "" {
		return "", errors.New("judge: activity description required")
	}
	if strings.TrimSpace(rubric) == "" {
		rubric = FallbackRubric(activityDescription)
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(photo)

	req := chatCompletionRequest{
		Model: c.visionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: assessmentPrompt(activityDescription, rubric)},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0.2,
		MaxTokens:   256,
	}

	return c.complete(ctx, req)
}

// GenerateActivities asks the text model for activity drafts and parses the
// JSON array out of its response
func (c *HTTPClient) GenerateActivities(ctx context.Context, req GenerateRequest) ([]GeneratedActivity, error) {
	if req.Count < 1 {
		req.Count = 5
	}

	chatReq := chatCompletionRequest{
		Model: c.textModel,
		Messages: []chatMessage{
			{Role: "user", Content: generationPrompt(req)},
		},
		Temperature: 0.8,
	}

	raw, err := c.complete(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	cleaned := stripCodeFence(raw)
	if idx := strings.IndexByte(cleaned, '['); idx > 0 {
		cleaned = cleaned[idx:]
	}

	var activities []GeneratedActivity
	if err := json.Unmarshal([]byte(cleaned), &activities); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	return activities, nil
}

// complete performs one chat-completions round trip and extracts the first
// choice's text
func (c *HTTPClient) complete(ctx context.Context, reqBody chatCompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: API key not configured", ErrUnavailable)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", fmt.Errorf("failed to encode judge request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: undecodable response: %v", ErrUnavailable, err)
	}

	for _, choice := range completion.Choices {
		if strings.TrimSpace(choice.Message.Content) != "" {
			return choice.Message.Content, nil
		}
	}
	return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
}
