package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/logger"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const maxBodyBytes = 10 << 20

// TokenSource yields the bearer credential for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options configures the API client.
type Options struct {
	// Timeout bounds each request. Zero means no client-imposed timeout.
	Timeout   time.Duration
	UserAgent string
	// Transport overrides the default TLS 1.2+ transport, mainly for tests.
	Transport http.RoundTripper
}

// Envelope is the backend's wrapper around every response body.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
	Token      string          `json:"token,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
}

// Client wraps http.Client with the CareerBridge base URL, bearer auth and
// envelope handling.
type Client struct {
	inner     *http.Client
	base      *url.URL
	tokens    TokenSource
	timeout   time.Duration
	userAgent string
}

// New creates a Client rooted at baseURL (e.g. http://localhost:8080/api/v1).
func New(baseURL string, tokens TokenSource, opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("httpclient: invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("httpclient: base URL must be http or https, got %q", baseURL)
	}

	transport := opts.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
		}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "careerbridge-go"
	}

	return &Client{
		inner:     &http.Client{Transport: transport},
		base:      base,
		tokens:    tokens,
		timeout:   opts.Timeout,
		userAgent: userAgent,
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, "")
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, "")
}

// FilePart is one file field of a multipart upload.
type FilePart struct {
	Field    string
	FileName string
	Content  []byte
}

// Upload POSTs a multipart/form-data body with the given files and plain fields.
func (c *Client) Upload(ctx context.Context, path string, files []FilePart, fields map[string]string) (*Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, apperror.Transport(fmt.Errorf("httpclient: write field %s: %w", name, err))
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, apperror.Transport(fmt.Errorf("httpclient: create part %s: %w", f.Field, err))
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, apperror.Transport(fmt.Errorf("httpclient: write part %s: %w", f.Field, err))
		}
	}
	if err := w.Close(); err != nil {
		return nil, apperror.Transport(fmt.Errorf("httpclient: close multipart: %w", err))
	}
	return c.Do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType())
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*Envelope, error) {
	if body == nil {
		body = struct{}{}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, apperror.Transport(fmt.Errorf("httpclient: encode body: %w", err))
	}
	return c.Do(ctx, method, path, nil, bytes.NewReader(data), "application/json")
}

// Do performs exactly one request. Every failure comes back as *apperror.AppError:
// Code is the HTTP status (0 if no response arrived) and Message is the
// backend's "message" field when one was sent.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.resolve(path, query)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, apperror.Transport(fmt.Errorf("httpclient: build request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, apperror.Transport(fmt.Errorf("httpclient: load token: %w", err))
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.inner.Do(req)
	if err != nil {
		logger.Log.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, apperror.Transport(fmt.Errorf("httpclient: %s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperror.New(resp.StatusCode, "", fmt.Errorf("httpclient: read body: %w", err))
	}
	logger.Log.Debug("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.New(resp.StatusCode, backendMessage(raw),
			fmt.Errorf("httpclient: %s %s: status %d", method, path, resp.StatusCode))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return &Envelope{Success: true}, nil
	}
	if ok := gjson.GetBytes(raw, "success"); ok.Exists() && !ok.Bool() {
		return nil, apperror.New(resp.StatusCode, backendMessage(raw),
			fmt.Errorf("httpclient: %s %s: envelope reported failure", method, path))
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperror.New(resp.StatusCode, "", fmt.Errorf("httpclient: decode envelope: %w", err))
	}
	return &env, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// backendMessage pulls the human-readable message out of an error body. It
// tolerates non-JSON bodies and the few shapes the backend uses.
func backendMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	for _, path := range []string{"message", "error.message", "error"} {
		if r := gjson.GetBytes(raw, path); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

// Decode unmarshals the envelope's data member into T. A missing or null data
// member yields the zero value.
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, apperror.New(http.StatusOK, "", fmt.Errorf("httpclient: decode data: %w", err))
	}
	return out, nil
}
