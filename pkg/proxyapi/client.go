package proxyapi

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"igdebugger/pkg/errors"
	"igdebugger/pkg/logger"
)

// Client performs GET requests against the proxy and returns the decoded
// JSON body or a classified *errors.Error
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a proxy API client. A zero timeout means no client-side
// deadline; cancellation is left to the caller's context.
func NewClient(timeout time.Duration, userAgent string, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	headers := map[string]string{
		"Accept": "application/json",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
		logger:     log,
	}
}

// SetHeader sets a custom header sent with every request
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHTTPClient replaces the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.WarnWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, errors.Wrap(errors.ErrorTypeTransport, ctxErr, fmt.Sprintf("request cancelled: %v", ctxErr))
		}
		return nil, errors.Wrap(errors.ErrorTypeTransport, err, fmt.Sprintf("network error: %v", unwrapURLError(err)))
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})
	return resp, nil
}

// GetJSON fetches url and returns the response body when the status is 2xx
// and the body is valid JSON. A non-2xx status yields an ErrorTypeUpstreamHTTP
// error whose message is the body's "message" field when present, otherwise
// "Error: <status>".
func (c *Client) GetJSON(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInput, err, fmt.Sprintf("failed to create request: %v", err))
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeTransport, err, fmt.Sprintf("failed to read response body: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := errors.New(errors.ErrorTypeUpstreamHTTP, upstreamMessage(body, resp.StatusCode))
		e.Code = resp.StatusCode
		return nil, e
	}

	if !json.Valid(body) {
		return nil, errors.New(errors.ErrorTypeParsing, "failed to parse response: invalid JSON")
	}
	return json.RawMessage(body), nil
}

// upstreamMessage picks the error text for a non-2xx response
func upstreamMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		msg := gjson.GetBytes(body, "message")
		if Truthy(msg) {
			return msg.String()
		}
	}
	return fmt.Sprintf("Error: %d", status)
}

// Truthy reports whether a JSON value is present and not one of null, false,
// 0 or the empty string
func Truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Float() != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}

func unwrapURLError(err error) error {
	var urlErr interface{ Unwrap() error }
	if stderrors.As(err, &urlErr) {
		if inner := urlErr.Unwrap(); inner != nil {
			return inner
		}
	}
	return err
}
