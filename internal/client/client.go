// Package client talks to the spelling and prediction backend over HTTP.
//
// Both endpoints take the full current text as {"text": ...} and answer with
// a JSON object:
//
//	POST /check   -> {"errors": ["tokn", ...]}
//	POST /predict -> {"suggestions": ["word", ...], "type": "completion"|"next-word"}
//
// A missing or null "errors"/"suggestions" field means none. A missing "type"
// is inferred from the text. Anything else that does not fit the shape is
// reported as ErrMalformedResponse.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"soratra/internal/analysis"
	"soratra/internal/domain"
)

// ErrMalformedResponse is returned when a 2xx body does not have the expected shape
var ErrMalformedResponse = errors.New("malformed response")

// maxBodyBytes bounds how much of a response is read
const maxBodyBytes = 1 << 20

// SessionHeader carries the editor session on every request
const SessionHeader = "X-Soratra-Session"

// StatusError is returned for non-2xx responses
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Endpoint, e.Code, e.Body)
}

// Client calls /check and /predict on one backend
type Client struct {
	baseURL     string
	session     string
	http        *http.Client
	checks      *ttlcache.Cache[string, domain.ErrorSet]
	predictions *ttlcache.Cache[string, domain.Prediction]
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache remembers responses per exact text for ttl. A zero ttl disables
// caching.
func WithCache(ttl time.Duration, capacity int) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.checks, c.predictions = nil, nil
			return
		}
		if capacity <= 0 {
			capacity = 256
		}
		c.checks = ttlcache.New[string, domain.ErrorSet](
			ttlcache.WithTTL[string, domain.ErrorSet](ttl),
			ttlcache.WithCapacity[string, domain.ErrorSet](uint64(capacity)),
		)
		c.predictions = ttlcache.New[string, domain.Prediction](
			ttlcache.WithTTL[string, domain.Prediction](ttl),
			ttlcache.WithCapacity[string, domain.Prediction](uint64(capacity)),
		)
	}
}

// New creates a client for the backend at baseURL (no trailing slash)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		session: uuid.NewString(),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check asks the backend which tokens of text are misspelled
func (c *Client) Check(ctx context.Context, text string) (domain.ErrorSet, error) {
	if c.checks != nil {
		if item := c.checks.Get(text); item != nil {
			return item.Value(), nil
		}
	}

	body, err := c.post(ctx, "/check", text)
	if err != nil {
		return nil, err
	}

	errs, err := parseCheck(body)
	if err != nil {
		return nil, fmt.Errorf("/check: %w", err)
	}

	if c.checks != nil {
		c.checks.Set(text, errs, ttlcache.DefaultTTL)
	}
	return errs, nil
}

// Predict asks the backend for completions or next words for text
func (c *Client) Predict(ctx context.Context, text string) (domain.Prediction, error) {
	if c.predictions != nil {
		if item := c.predictions.Get(text); item != nil {
			return item.Value(), nil
		}
	}

	body, err := c.post(ctx, "/predict", text)
	if err != nil {
		return domain.Prediction{}, err
	}

	pred, err := parsePredict(body, text)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("/predict: %w", err)
	}

	if c.predictions != nil {
		c.predictions.Set(text, pred, ttlcache.DefaultTTL)
	}
	return pred, nil
}

// Session returns the ID sent with every request of this client
func (c *Client) Session() string {
	return c.session
}

// Close drops cached responses
func (c *Client) Close() {
	if c.checks != nil {
		c.checks.DeleteAll()
	}
	if c.predictions != nil {
		c.predictions.DeleteAll()
	}
}

func (c *Client) post(ctx context.Context, endpoint, text string) ([]byte, error) {
	payload, err := sjson.SetBytes([]byte(`{}`), "text", text)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SessionHeader, c.session)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}

func parseObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	res := gjson.ParseBytes(body)
	if !res.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected an object", ErrMalformedResponse)
	}
	return res, nil
}

// stringArray reads an optional array of strings; absent or null is empty
func stringArray(res gjson.Result, field string) ([]string, error) {
	v := res.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedResponse, field)
	}
	var out []string
	for _, item := range v.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("%w: %q holds a non-string", ErrMalformedResponse, field)
		}
		out = append(out, item.Str)
	}
	return out, nil
}

func parseCheck(body []byte) (domain.ErrorSet, error) {
	res, err := parseObject(body)
	if err != nil {
		return nil, err
	}
	tokens, err := stringArray(res, "errors")
	if err != nil {
		return nil, err
	}
	return domain.NewErrorSet(tokens), nil
}

func parsePredict(body []byte, text string) (domain.Prediction, error) {
	res, err := parseObject(body)
	if err != nil {
		return domain.Prediction{}, err
	}
	sugs, err := stringArray(res, "suggestions")
	if err != nil {
		return domain.Prediction{}, err
	}

	kind := analysis.InferKind(text)
	if t := res.Get("type"); t.Exists() && t.Type != gjson.Null {
		if t.Type != gjson.String {
			return domain.Prediction{}, fmt.Errorf("%w: \"type\" is not a string", ErrMalformedResponse)
		}
		kind, err = domain.ParseSuggestionKind(t.Str)
		if err != nil {
			return domain.Prediction{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return domain.Prediction{Suggestions: sugs, Kind: kind}, nil
}
