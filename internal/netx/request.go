// Package netx is the single HTTP request helper every backend call goes
// through.
//
// Contract:
//
//   - transport failures return an error wrapping ErrTransport;
//   - non-2xx responses return *RequestError carrying the status code, the
//     status text and the response body read on a best-effort basis (a failed
//     body read yields an empty body, never a second error);
//   - 2xx responses return *Response. DoJSON decodes the body into the target
//     only when it is non-empty and the Content-Type is JSON; empty or
//     non-JSON bodies leave the target untouched. Undecodable JSON returns an
//     error wrapping ErrDecode.
//
// Requests are never retried.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrTransport = errors.New("transport error")
	ErrDecode    = errors.New("response decode error")
	ErrEncode    = errors.New("request encode error")
)

// Request describes one call relative to the Requester's base URL.
// Path may contain escaped segments (see url.PathEscape).
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body, when non-nil, is sent as JSON.
	Body any
}

// Response is a successful (2xx) response with its body fully read.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return IsJSONContentType(r.ContentType)
}

// Text returns the raw body.
func (r *Response) Text() string {
	return string(r.Body)
}

type Option func(*Requester)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) { r.http = c }
}

// WithLogger sets the logger used for per-request debug lines. A nil logger
// keeps the default, which discards output.
func WithLogger(l logging.Logger) Option {
	return func(r *Requester) {
		if l != nil {
			r.logger = l
		}
	}
}

// Requester performs requests against one backend.
type Requester struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

// NewRequester validates baseURL and returns a Requester whose http.Client
// uses the given timeout (zero means no timeout).
func NewRequester(baseURL string, timeout time.Duration, opts ...Option) (*Requester, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	r := &Requester{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BaseURL returns the backend base URL.
func (r *Requester) BaseURL() string {
	return r.baseURL.String()
}

// Close releases idle keep-alive connections.
func (r *Requester) Close() {
	r.http.CloseIdleConnections()
}

func (r *Requester) resolve(req Request) (*url.URL, error) {
	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", req.Path, err)
	}

	u := *r.baseURL
	u.Path = joinPath(r.baseURL.Path, ref.Path)
	u.RawPath = joinPath(r.baseURL.EscapedPath(), ref.EscapedPath())

	q := ref.Query()
	for k, vs := range req.Query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return &u, nil
}

func joinPath(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// Do performs req. See the package documentation for the error contract.
func (r *Requester) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := r.resolve(req)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	log := r.logger.With("request_id", requestID, "method", method, "url", u.String())

	start := time.Now()
	resp, err := r.http.Do(httpReq)
	if err != nil {
		log.Debug(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// best effort, a broken body must not hide the status
		b, _ := io.ReadAll(resp.Body)
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(b),
		}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        b,
	}, nil
}

// DoJSON performs req and decodes a JSON body into out (which may be nil).
func (r *Requester) DoJSON(ctx context.Context, req Request, out any) (*Response, error) {
	resp, err := r.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 || !resp.IsJSON() {
		return resp, nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return resp, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return resp, nil
}

func statusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if s := strings.TrimPrefix(resp.Status, prefix); s != "" && s != resp.Status {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// IsJSONContentType reports whether ct is application/json or a +json type.
func IsJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
