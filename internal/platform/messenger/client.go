package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/pkg/errors"
)

// Client talks to the Facebook Graph API for one page. Send and profile
// failures are logged here and degrade to nil; callers continue without
// the data.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(accessToken string, logger *zap.Logger) *Client {
	return &Client{
		accessToken: accessToken,
		baseURL:     constants.MessengerConfig.GraphAPIBaseURL,
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.RequestTimeout,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the Graph API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// SendTextMessage delivers a plain-text message to a user. Returns nil
// when the platform rejects the send.
func (c *Client) SendTextMessage(ctx context.Context, recipientID, text string) *domain.MessengerEvent {
	var resp sendMessageResponse
	err := c.doRequest(ctx, http.MethodPost, "/me/messages", sendMessageRequest{
		Recipient: Participant{ID: recipientID},
		Message:   &messageBody{Text: text},
	}, &resp)
	if err != nil {
		c.logger.Error("Failed to send text message",
			zap.String("recipient_id", recipientID),
			zap.Error(err),
		)
		return nil
	}

	return &domain.MessengerEvent{RecipientID: resp.RecipientID}
}

// SendSenderAction shows a sender action such as "typing_on". Best-effort.
func (c *Client) SendSenderAction(ctx context.Context, recipientID, action string) {
	err := c.doRequest(ctx, http.MethodPost, "/me/messages", sendMessageRequest{
		Recipient:    Participant{ID: recipientID},
		SenderAction: action,
	}, nil)
	if err != nil {
		c.logger.Error("Failed to send sender action",
			zap.String("recipient_id", recipientID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// GetUserProfile fetches the user's public profile. Returns nil on any
// failure; the profile only enriches analytics and is never required.
func (c *Client) GetUserProfile(ctx context.Context, userID string) *domain.Profile {
	path := fmt.Sprintf("/%s?fields=%s", userID, url.QueryEscape(constants.MessengerConfig.ProfileFields))

	var profile domain.Profile
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &profile); err != nil {
		c.logger.Error("Failed to fetch user profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil
	}

	profile.ID = userID
	return &profile
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, dest any) error {
	// The access token always travels as a query param.
	separator := "?"
	if strings.ContainsRune(path, '?') {
		separator = "&"
	}
	reqURL := c.baseURL + path + separator + "access_token=" + url.QueryEscape(c.accessToken)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewServiceError("graph request failed", "messenger", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewServiceError("failed to read graph response", "messenger", path, err)
	}

	if resp.StatusCode >= 400 {
		return errors.NewAPIError(fmt.Sprintf("graph returned status %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"path": path,
			"body": string(respBody),
		})
	}

	if dest != nil {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return errors.NewServiceError("failed to decode graph response", "messenger", path, err)
		}
	}

	return nil
}
