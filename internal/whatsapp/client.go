package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/metrics"
)

const maxErrorBody = 4 << 10

type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	limiter    *rate.Limiter
	breakers   *BreakerSet
	logger     *zap.Logger
}

func NewClient(cfg *config.WhatsAppConfig, logger *zap.Logger) *Client {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.GraphBaseURL, "/"),
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter:  rate.NewLimiter(limit, cfg.RateLimitBurst),
		breakers: NewBreakerSet(cfg.CircuitBreaker, logger),
		logger:   logger,
	}
}

// Breakers exposes per-number breaker state for health reporting.
func (c *Client) Breakers() *BreakerSet {
	return c.breakers
}

// SendTemplate posts msg from creds.PhoneNumberID and returns the provider message id.
// Provider rejections come back as *APIError; a blocked number returns ErrCircuitOpen.
func (c *Client) SendTemplate(ctx context.Context, creds Credentials, msg *TemplateMessage) (string, error) {
	// The limiter is shared by every tenant, so a blocked number must not take a token.
	if c.breakers.Blocked(creds.PhoneNumberID) {
		return "", ErrCircuitOpen
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	start := time.Now()
	id, err := c.breakers.Execute(creds.PhoneNumberID, func() (string, error) {
		return c.post(ctx, creds, msg)
	})

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ProviderSendDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return id, err
}

func (c *Client) post(ctx context.Context, creds Credentials, msg *TemplateMessage) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.apiVersion, creds.PhoneNumberID)

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeAPIError(resp)
	}

	var sendResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(sendResp.Messages) == 0 || sendResp.Messages[0].ID == "" {
		return "", ErrEmptyResponse
	}

	return sendResp.Messages[0].ID, nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{HTTPStatus: resp.StatusCode}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && (envelope.Error.Code != 0 || envelope.Error.Message != "") {
		apiErr.Code = envelope.Error.Code
		apiErr.Subcode = envelope.Error.ErrorSubcode
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
		apiErr.FbtraceID = envelope.Error.FbtraceID
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
