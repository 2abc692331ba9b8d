package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"igcomments/pkg/errors"
	"igcomments/pkg/logger"
)

// Client represents a Graph API client
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	apiVersion string
	logger     logger.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIVersion sets the Graph API version
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Graph API client. A zero timeout leaves requests
// bounded only by ctx and the transport.
func NewClient(timeout time.Duration, log logger.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "igcomments",
		},
		baseURL:    BaseURL,
		apiVersion: APIVersion,
		logger:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// doRequest performs an HTTP request with the configured headers
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	safeURL := RedactURL(req.URL.String())
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    safeURL,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      safeURL,
			"error":    err.Error(),
			"duration": duration,
		})
		// url.Error repeats the full URL, token included
		if urlErr, ok := err.(*url.Error); ok {
			err = urlErr.Err
		}
		return nil, errors.New(errors.ErrorTypeNetwork, 0, "network error: %v", err)
	}

	logger.LogRequest(c.logger, req.Method, safeURL, resp.StatusCode, float64(duration.Microseconds())/1000)

	return resp, nil
}

// GetJSON performs a GET request and decodes the JSON response into target
func (c *Client) GetJSON(ctx context.Context, rawURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.New(errors.ErrorTypeUnknown, 0, "failed to create request: %v", err)
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(errors.ErrorTypeNetwork, resp.StatusCode, "failed to read response body: %v", err)
	}

	if err := checkResponseStatus(resp.StatusCode, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.DebugWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          RedactURL(rawURL),
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errors.New(errors.ErrorTypeParsing, resp.StatusCode, "failed to parse JSON: %v", err)
	}

	return nil
}

// checkResponseStatus turns any non-2xx status into an *errors.Error,
// using the Graph error object from the body when there is one.
func checkResponseStatus(statusCode int, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	message := fmt.Sprintf("unexpected status code: %d", statusCode)

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		message = fmt.Sprintf("%s (type %s, graph code %d)", errResp.Error.Message, errResp.Error.Type, errResp.Error.Code)
	}

	return errors.New(errors.TypeFromStatusCode(statusCode), statusCode, "%s", message)
}

// GetPage fetches a page with its instagram_business_account field
func (c *Client) GetPage(ctx context.Context, pageID, accessToken string) (*Page, error) {
	u := BuildURL(c.baseURL, c.apiVersion, PageParams(accessToken), pageID)

	var page Page
	if err := c.GetJSON(ctx, u, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ListMedia fetches up to limit recent media items of a business account
func (c *Client) ListMedia(ctx context.Context, accountID, accessToken string, limit int) ([]MediaItem, error) {
	u := BuildURL(c.baseURL, c.apiVersion, MediaParams(accessToken, limit), accountID, "media")

	var list MediaList
	if err := c.GetJSON(ctx, u, &list); err != nil {
		return nil, err
	}

	return list.Data, nil
}

// ListComments fetches the first page of comments on a media item
func (c *Client) ListComments(ctx context.Context, mediaID, accessToken string) ([]CommentData, error) {
	u := BuildURL(c.baseURL, c.apiVersion, CommentParams(accessToken), mediaID, "comments")

	var list CommentList
	if err := c.GetJSON(ctx, u, &list); err != nil {
		return nil, err
	}

	return list.Data, nil
}
