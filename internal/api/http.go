package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"civiceye/internal/config"
	"civiceye/internal/debug"
	"civiceye/internal/domain"
)

const (
	defaultUserAgent = "CivicEye-App/1.0"
	maxBodyBytes     = 4 << 20
)

// HTTPClient implements Client against the REST service.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	fs           afero.Fs
	userAgent    string
	newRequestID func() string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. Its timeout is overwritten
// by the configured request timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithFs sets the filesystem image attachments are read from.
func WithFs(fs afero.Fs) Option {
	return func(h *HTTPClient) {
		if fs != nil {
			h.fs = fs
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTPClient) {
		if strings.TrimSpace(ua) != "" {
			h.userAgent = ua
		}
	}
}

// NewHTTPClient builds a client for the base URL and timeout in cfg.
func NewHTTPClient(cfg config.API, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		http:         &http.Client{},
		fs:           afero.NewOsFs(),
		userAgent:    defaultUserAgent,
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}
	h.http.Timeout = timeout
	return h
}

// BaseURL returns the service root requests are resolved against.
func (h *HTTPClient) BaseURL() string {
	return h.baseURL
}

func (h *HTTPClient) CreateIssue(ctx context.Context, issue NewIssue) (domain.Issue, error) {
	body, contentType, err := h.encodeIssueForm(issue)
	if err != nil {
		return domain.Issue{}, newError(OpCreateIssue, 0, "", err)
	}
	var created domain.Issue
	if err := h.do(ctx, OpCreateIssue, http.MethodPost, "/issues", body, contentType, &created); err != nil {
		return domain.Issue{}, err
	}
	return created, nil
}

func (h *HTTPClient) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	return h.list(ctx, OpListIssues, "/issues")
}

func (h *HTTPClient) ListResolved(ctx context.Context) ([]domain.Issue, error) {
	return h.list(ctx, OpListResolved, "/issues/resolved")
}

func (h *HTTPClient) ListUnresolved(ctx context.Context) ([]domain.Issue, error) {
	return h.list(ctx, OpListUnresolved, "/issues/unresolved")
}

func (h *HTTPClient) ResolveIssue(ctx context.Context, id string) (domain.Issue, error) {
	path := "/issues/" + url.PathEscape(id) + "/resolve"
	var resolved domain.Issue
	if err := h.do(ctx, OpResolveIssue, http.MethodPatch, path, nil, "", &resolved); err != nil {
		return domain.Issue{}, err
	}
	return resolved, nil
}

func (h *HTTPClient) TestStorage(ctx context.Context) (ProbeResult, error) {
	return h.probe(ctx, OpTestStorage, "/cloudinary/test")
}

func (h *HTTPClient) Health(ctx context.Context) (ProbeResult, error) {
	return h.probe(ctx, OpHealth, "/")
}

func (h *HTTPClient) list(ctx context.Context, op, path string) ([]domain.Issue, error) {
	var issues []domain.Issue
	if err := h.do(ctx, op, http.MethodGet, path, nil, "", &issues); err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	return issues, nil
}

func (h *HTTPClient) probe(ctx context.Context, op, path string) (ProbeResult, error) {
	var raw []byte
	if err := h.do(ctx, op, http.MethodGet, path, nil, "", &raw); err != nil {
		return ProbeResult{}, err
	}
	msg := serverMessage(raw)
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	return ProbeResult{Message: msg, Raw: raw}, nil
}

// do sends one request. out may be *[]byte to receive the raw body, or any
// JSON target; an empty body leaves the target untouched.
func (h *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	endpoint := h.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return newError(op, 0, "", fmt.Errorf("build request: %w", err))
	}
	if contentType == "" && body != nil {
		contentType = "application/json"
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	requestID := h.newRequestID()
	req.Header.Set("X-Request-ID", requestID)

	debug.Logf("API Request: %s %s", method, path)
	resp, err := h.http.Do(req)
	if err != nil {
		debug.Info("API Response Error", "op", op, "request_id", requestID, "error", err)
		debug.Log("Network error detected")
		return newError(op, 0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return newError(op, resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		debug.Info("API Response Error", "op", op, "status", resp.StatusCode, "request_id", requestID)
		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			debug.Log("Unauthorized access detected")
		case resp.StatusCode >= 500:
			debug.Log("Server error detected")
		}
		return newError(op, resp.StatusCode, serverMessage(data), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	debug.Logf("API Response: %d %s", resp.StatusCode, path)

	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newError(op, resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// serverMessage extracts the "message" field of a JSON error body.
func serverMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

func (h *HTTPClient) encodeIssueForm(issue NewIssue) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"title", issue.Title},
		{"description", issue.Description},
		{"location", issue.Location},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if img := issue.Image; img != nil {
		if err := h.writeImagePart(w, img); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func (h *HTTPClient) writeImagePart(w *multipart.Writer, img *domain.Image) error {
	f, err := h.fs.Open(img.URI)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := img.Name
	if name == "" {
		name = filepath.Base(img.URI)
	}
	mimeType := img.Type
	if mimeType == "" {
		mimeType = domain.DefaultImageType
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
	header.Set("Content-Type", mimeType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}

// IsTimeout reports whether err was caused by the request deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
