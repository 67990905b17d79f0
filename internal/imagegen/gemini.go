package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tinytelemetry/smileguide/internal/model"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Gemini API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var (
	ErrNoAPIKey    = errors.New("imagegen: api key not configured")
	ErrNoImage     = errors.New("imagegen: response contained no image")
	errRateLimited = errors.New("imagegen: rate limited")
)

// Config holds generator settings. MaxRetries counts attempts after the
// first; zero disables retrying.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
}

// GeminiGenerator calls the Imagen predict endpoint and returns the first
// image as a data URL.
type GeminiGenerator struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// NewGeminiGenerator creates a generator. Missing settings fall back to
// defaults; a missing API key is reported when Generate is called.
func NewGeminiGenerator(cfg Config, log *zap.Logger) *GeminiGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = model.DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = model.DefaultImageTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GeminiGenerator{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParams     `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParams struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// Generate renders prompt into a single square image. Transient failures
// (network errors, 429 and 5xx responses) are retried with exponential
// backoff; other 4xx responses fail immediately.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.cfg.APIKey) == "" {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParams{SampleCount: 1, AspectRatio: "1:1"},
	})
	if err != nil {
		return "", fmt.Errorf("imagegen: encode request: %w", err)
	}

	var result string
	attempt := 0
	op := func() error {
		attempt++
		url, err := g.predict(ctx, body)
		if err != nil {
			g.log.Warn("imagegen: attempt failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		result = url
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, g.cfg.MaxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return result, nil
}

func (g *GeminiGenerator) predict(ctx context.Context, body []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:predict", strings.TrimRight(g.cfg.BaseURL, "/"), g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("imagegen: build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagegen: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		statusErr := fmt.Errorf("imagegen: http %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: %v", errRateLimited, statusErr)
		case resp.StatusCode >= 500:
			return "", statusErr
		default:
			return "", backoff.Permanent(statusErr)
		}
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", backoff.Permanent(fmt.Errorf("imagegen: decode response: %w", err))
	}
	for _, p := range out.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mime := p.MimeType
		if mime == "" {
			mime = "image/png"
		}
		return "data:" + mime + ";base64," + p.BytesBase64Encoded, nil
	}
	return "", backoff.Permanent(ErrNoImage)
}
