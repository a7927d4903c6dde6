package analytics

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/pkg/errors"
)

// Client talks to the Mixpanel ingestion API. Payloads travel as
// base64-encoded JSON in the data form field; the endpoint answers "1" on
// success and "0" on rejection.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(token string, logger *zap.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: constants.MixpanelConfig.BaseURL,
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.RequestTimeout,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the ingestion endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Track records an event for a user.
func (c *Client) Track(ctx context.Context, distinctID, event string, properties map[string]any) error {
	props := map[string]any{
		"token":       c.token,
		"distinct_id": distinctID,
	}
	for k, v := range properties {
		props[k] = v
	}

	return c.send(ctx, "/track", map[string]any{
		"event":      event,
		"properties": props,
	})
}

// Engage updates a user's profile properties.
func (c *Client) Engage(ctx context.Context, distinctID string, set map[string]any) error {
	return c.send(ctx, "/engage", map[string]any{
		"$token":       c.token,
		"$distinct_id": distinctID,
		"$set":         set,
	})
}

func (c *Client) send(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.NewServiceError("failed to marshal payload", "mixpanel", path, err)
	}

	form := url.Values{}
	form.Set("data", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewServiceError("ingestion request failed", "mixpanel", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewServiceError("failed to read ingestion response", "mixpanel", path, err)
	}

	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "1" {
		return errors.NewAPIError(fmt.Sprintf("ingestion rejected: %s", string(body)), resp.StatusCode, map[string]any{
			"path": path,
		})
	}

	return nil
}
