// Package graph is a small form-encoded JSON client for the Graph API
// shared by the Instagram, Facebook and token components.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/ratelimit"
	apperrors "github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/formatter"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/orgball2608/reel-publisher-bot/pkg/retry"
)

const maxBodyBytes = 1 << 20

type Opts struct {
	BaseURL    string
	Platform   string
	HTTPClient *http.Client
	Limiter    ratelimit.Limiter
	Logger     logger.Logger
	Retry      retry.Config
}

type Client struct {
	baseURL  string
	platform string
	http     *http.Client
	limiter  ratelimit.Limiter
	logger   logger.Logger
	retry    retry.Config
}

func New(opts Opts) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		platform: opts.Platform,
		http:     httpClient,
		limiter:  opts.Limiter,
		logger:   opts.Logger,
		retry:    opts.Retry.WithRetryable(retryable),
	}
}

type errorEnvelope struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		ErrorUserMsg string `json:"error_user_msg"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

// Get issues an idempotent read, retried with backoff on network errors, 429 and 5xx.
func (c *Client) Get(ctx context.Context, step, path string, query url.Values, out any) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(path, query), nil)
		if err != nil {
			return retry.Permanent(err)
		}
		return c.Do(ctx, step, req, out)
	}
	return retry.Do(ctx, c.logger, c.platform+" "+step, operation, c.retry)
}

// PostForm issues a single form-encoded POST. Writes are never retried.
func (c *Client) PostForm(ctx context.Context, step, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(ctx, step, req, out)
}

// Do sends req and decodes a 2xx JSON body into out.
func (c *Client) Do(ctx context.Context, step string, req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.platform); err != nil {
			return err
		}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", c.platform, step, err)
	}
	defer safeClose(res.Body, c.logger)

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s read body: %w", c.platform, step, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.apiError(step, res.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s decode response: %w", c.platform, step, err)
	}
	return nil
}

func (c *Client) apiError(step string, status int, body []byte) *apperrors.APIError {
	apiErr := &apperrors.APIError{
		Platform:   c.platform,
		Step:       step,
		StatusCode: status,
		Body:       formatter.Truncate(string(body), 600),
	}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Message = env.Error.Message
		if env.Error.ErrorUserMsg != "" {
			apiErr.Message = env.Error.Message + " (" + env.Error.ErrorUserMsg + ")"
		}
		apiErr.Code = env.Error.Code
		apiErr.Subcode = env.Error.ErrorSubcode
		apiErr.TraceID = env.Error.FbtraceID
	}
	c.logger.Warn("API call failed",
		"platform", c.platform,
		"step", step,
		"status", status,
		"code", apiErr.Code,
		"message", apiErr.Message,
	)
	return apiErr
}

func (c *Client) resolve(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func retryable(err error) bool {
	var apiErr *apperrors.APIError
	if apperrors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return true
}

// safeClose safely closes an io.ReadCloser and logs any errors
func safeClose(closer io.ReadCloser, log logger.Logger) {
	if err := closer.Close(); err != nil {
		log.Error("Error closing response body", "error", err)
	}
}
