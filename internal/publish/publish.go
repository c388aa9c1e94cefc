// Package publish writes the catalog to a file in a GitHub repository
// through the Contents API. Each call is a single attempt bounded by the
// configured timeout.
package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/printgenie/internal/store"
)

const (
	DefaultBaseURL = "https://api.github.com"
	defaultTimeout = 15 * time.Second
)

// ErrTimeout is returned when the publish did not finish within the timeout.
var ErrTimeout = errors.New("publish timed out")

// APIError is a non-success response from GitHub.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error (status %d): %s", e.Status, e.Message)
}

// Hint turns the status into an operator-facing explanation.
func (e *APIError) Hint() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "GitHub token is invalid or expired"
	case http.StatusForbidden:
		return "GitHub token does not have write access to the repository"
	case http.StatusNotFound:
		return "repository, branch or path was not found"
	case http.StatusConflict:
		return "the catalog file changed while publishing; try again"
	case http.StatusUnprocessableEntity:
		return "GitHub rejected the file contents"
	default:
		return e.Message
	}
}

type Config struct {
	Token   string
	Owner   string
	Repo    string
	Path    string
	Branch  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Result describes the written file.
type Result struct {
	Path    string `json:"path"`
	SHA     string `json:"sha"`
	Created bool   `json:"created"`
	URL     string `json:"url"`
}

type contentResponse struct {
	SHA     string `json:"sha"`
	Path    string `json:"path"`
	HTMLURL string `json:"html_url"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content contentResponse `json:"content"`
}

// Publish creates or replaces the configured file with content.
func (c *Client) Publish(ctx context.Context, content []byte, message string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	current, err := c.currentSHA(ctx)
	if err != nil {
		return Result{}, c.wrap(ctx, err)
	}

	body, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.cfg.Branch,
		SHA:     current,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var resp putResponse
	if err := c.do(ctx, http.MethodPut, body, &resp); err != nil {
		return Result{}, c.wrap(ctx, err)
	}

	c.logger.Info("catalog published",
		zap.String("repo", c.cfg.Owner+"/"+c.cfg.Repo),
		zap.String("path", resp.Content.Path),
		zap.String("sha", resp.Content.SHA),
		zap.Bool("created", current == ""),
	)
	return Result{
		Path:    resp.Content.Path,
		SHA:     resp.Content.SHA,
		Created: current == "",
		URL:     resp.Content.HTMLURL,
	}, nil
}

// currentSHA returns the blob sha of the existing file, or "" if the file
// does not exist yet.
func (c *Client) currentSHA(ctx context.Context) (string, error) {
	var existing contentResponse
	err := c.do(ctx, http.MethodGet, nil, &existing)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return existing.SHA, nil
}

func (c *Client) contentsURL(method string) string {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.Repo), strings.TrimPrefix(c.cfg.Path, "/"))
	if method == http.MethodGet && c.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(c.cfg.Branch)
	}
	return u
}

func (c *Client) do(ctx context.Context, method string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.contentsURL(method), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiMsg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &apiMsg)
		if apiMsg.Message == "" {
			apiMsg.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiMsg.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) wrap(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.cfg.Timeout)
	}
	return err
}

// Document is the published catalog file.
type Document struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Count       int             `json:"count"`
	Products    []store.Product `json:"products"`
}

// Encode renders the catalog file published for products.
func Encode(products []store.Product, at time.Time) ([]byte, error) {
	if products == nil {
		products = []store.Product{}
	}
	data, err := json.MarshalIndent(Document{
		GeneratedAt: at.UTC(),
		Count:       len(products),
		Products:    products,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}
