package sozdik

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/yenbekbay/sozdik-bot/internal/constants"
	"github.com/yenbekbay/sozdik-bot/internal/domain"
	"github.com/yenbekbay/sozdik-bot/pkg/errors"
)

// Translator resolves a single language-pair direction for a query. A nil
// translation with a nil error means the dictionary has no entry.
type Translator interface {
	GetTranslation(ctx context.Context, query string, fromLang, toLang domain.Language) (*domain.Translation, error)
}

type translateResponse struct {
	Message     string `json:"message"`
	Translation string `json:"translation"`
	URLShort    string `json:"url_short"`
}

// Client queries the sozdik.kz translate API on behalf of one platform
// identity. Every call hits the backend fresh; see CachedTranslator for the
// optional short-TTL cache.
type Client struct {
	clientID   string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(clientID, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		clientID: clientID,
		apiKey:   apiKey,
		baseURL:  constants.SozdikAPIConfig.BaseURL,
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.RequestTimeout,
		},
		logger: logger,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) GetTranslation(ctx context.Context, query string, fromLang, toLang domain.Language) (*domain.Translation, error) {
	if query == "" {
		return nil, errors.NewValidationError("query must not be empty", "query", query)
	}
	if fromLang == toLang {
		return nil, errors.NewValidationError("lookup languages must differ", "fromLang", fromLang.String())
	}

	params := url.Values{}
	params.Set("client", c.clientID)
	params.Set("lang_from", fromLang.String())
	params.Set("lang_to", toLang.String())
	params.Set("phrase", query)
	params.Set("hash", c.requestFingerprint(query, fromLang, toLang))
	params.Set("strict", strconv.Itoa(constants.SozdikAPIConfig.Strict))
	params.Set("output_format", constants.SozdikAPIConfig.OutputFormat)
	params.Set("output_samples", strconv.Itoa(constants.SozdikAPIConfig.OutputSamples))
	params.Set("api_version", constants.SozdikAPIConfig.APIVersion)
	params.Set("client_version", constants.SozdikAPIConfig.ClientVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/translate?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constants.SozdikAPIConfig.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewServiceError("translate request failed", "sozdik", "translate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(fmt.Sprintf("translate returned status %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"query":     query,
			"lang_from": fromLang.String(),
			"lang_to":   toLang.String(),
		})
	}

	var payload translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewServiceError("failed to decode translate response", "sozdik", "translate", err)
	}

	if payload.Message != "Found" || payload.Translation == "" {
		return nil, nil
	}

	text, err := markupToMarkdown(payload.Translation)
	if err != nil {
		return nil, errors.NewServiceError("failed to convert translation markup", "sozdik", "translate", err)
	}
	if text == "" {
		// A match with no renderable content is the same as no match.
		return nil, nil
	}

	return &domain.Translation{
		Query:    query,
		Text:     text,
		FromLang: fromLang,
		ToLang:   toLang,
		URL:      payload.URLShort,
		Title:    fmt.Sprintf(`*"%s" %s*`, query, toLang.InLanguage()),
	}, nil
}

// requestFingerprint builds the deterministic authentication hash the
// backend validates for every request.
func (c *Client) requestFingerprint(query string, fromLang, toLang domain.Language) string {
	sum := md5.Sum([]byte(c.clientID + c.apiKey + fromLang.String() + toLang.String() + query))
	return hex.EncodeToString(sum[:])
}
