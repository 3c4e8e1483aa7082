package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/gita-t/internal/logging"
	"github.com/justyntemme/gita-t/pkg/models"
)

// ChapterPageSize is the number of chapters requested per page. The Gita
// has exactly eighteen, so one page is the whole list.
const ChapterPageSize = 18

const (
	headerAPIKey  = "x-rapidapi-key"
	headerAPIHost = "x-rapidapi-host"
)

// ErrRequestFailed is wrapped by every error the client returns. Callers
// should not look further than errors.Is.
var ErrRequestFailed = errors.New("scripture request failed")

// RequestError carries diagnostic detail for logs
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequestFailed}
	}
	return []error{ErrRequestFailed, e.Err}
}

// Client is the HTTP client for the scripture API
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey, apiHost string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiHost:    apiHost,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a single GET against the scripture API
func (c *Client) get(ctx context.Context, op, path string) (*http.Response, error) {
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	log := logging.LoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPIHost, c.apiHost)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed", "op", op, "path", path, "error", err)
		return nil, &RequestError{Op: op, Err: err}
	}
	log.Debug("request done", "op", op, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// parseResponse reads and unmarshals the response body
func parseResponse[T any](op string, resp *http.Response) (T, error) {
	var result T
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp models.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return result, &RequestError{Op: op, Status: resp.StatusCode, Err: errors.New(errResp.Message)}
		}
		return result, &RequestError{Op: op, Status: resp.StatusCode}
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, &RequestError{Op: op, Err: fmt.Errorf("decoding body: %w", err)}
	}

	return result, nil
}

// ListChapters returns the chapters in the order the server gives them
func (c *Client) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	const op = "list chapters"
	resp, err := c.get(ctx, op, fmt.Sprintf("/v2/chapters/?skip=0&limit=%d", ChapterPageSize))
	if err != nil {
		return nil, err
	}
	return parseResponse[[]models.Chapter](op, resp)
}

// GetVerse returns a single verse. Bounds are the caller's responsibility.
func (c *Client) GetVerse(ctx context.Context, chapterNumber, verseNumber int) (*models.Verse, error) {
	op := fmt.Sprintf("get verse %d.%d", chapterNumber, verseNumber)
	resp, err := c.get(ctx, op, fmt.Sprintf("/v2/chapters/%d/verses/%d/", chapterNumber, verseNumber))
	if err != nil {
		return nil, err
	}
	verse, err := parseResponse[*models.Verse](op, resp)
	if err != nil {
		return nil, err
	}
	if verse == nil {
		return nil, &RequestError{Op: op, Err: errors.New("empty body")}
	}
	return verse, nil
}

// FetchImage downloads and decodes an image from an arbitrary URL. The API
// headers are not sent.
func (c *Client) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	const op = "fetch image"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{Op: op, Status: resp.StatusCode}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: fmt.Errorf("decoding image: %w", err)}
	}
	return img, nil
}
