// Package client calls a running mortsim HTTP service.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mortsim/internal/export"
	"mortsim/internal/model"
	"mortsim/internal/server"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // a 50-year ledger is well under this
)

// ErrRejected indicates the service refused the loan parameters.
var ErrRejected = errors.New("mortsim: request rejected")

// APIError is a non-2xx response from the service.
type APIError struct {
	Status  int
	Message string
	Param   string // rejected parameter, when the service names one
}

func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("mortsim: HTTP %d: %s (param %s)", e.Status, e.Message, e.Param)
	}
	return fmt.Sprintf("mortsim: HTTP %d: %s", e.Status, e.Message)
}

// Unwrap matches ErrRejected for 400 responses.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusBadRequest {
		return ErrRejected
	}
	return nil
}

// Query overrides the service defaults. Zero fields are left to the service.
type Query struct {
	Price           float64
	DownpaymentRate float64
	Years           int
	AnnualRate      float64
	Payment         float64
}

// QueryFor overrides every loan field.
func QueryFor(l model.Loan, payment float64) Query {
	return Query{
		Price:           l.Price,
		DownpaymentRate: l.DownpaymentRate,
		Years:           l.Years,
		AnnualRate:      l.AnnualRate,
		Payment:         payment,
	}
}

// Values encodes the query string.
func (q Query) Values() url.Values {
	v := url.Values{}
	put := func(key string, f float64) {
		if f != 0 {
			v.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
		}
	}
	put("price", q.Price)
	put("downpayment_rate", q.DownpaymentRate)
	put("annual_rate", q.AnnualRate)
	put("payment", q.Payment)
	if q.Years != 0 {
		v.Set("years", strconv.Itoa(q.Years))
	}
	return v
}

// Client talks to one service address.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for addr, either host:port or a full http URL.
// Returns nil if addr is empty.
func New(addr string) *Client {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: strings.TrimSuffix(addr, "/"),
		http:    &http.Client{},
	}
}

// Status returns the service counters and defaults.
func (c *Client) Status(ctx context.Context) (server.Status, error) {
	var st server.Status
	err := c.getJSON(ctx, "/v1/status", nil, &st)
	return st, err
}

// Summary returns loan totals for q.
func (c *Client) Summary(ctx context.Context, q Query) (server.SummaryBody, error) {
	var body server.SummaryBody
	err := c.getJSON(ctx, "/v1/summary", q.Values(), &body)
	return body, err
}

// Schedule returns the full ledger for q.
func (c *Client) Schedule(ctx context.Context, q Query) (export.LedgerDocument, error) {
	var doc export.LedgerDocument
	err := c.getJSON(ctx, "/v1/schedule", q.Values(), &doc)
	return doc, err
}

// Yearly returns the yearly rollup for q.
func (c *Client) Yearly(ctx context.Context, q Query) ([]model.YearRecord, error) {
	var years []model.YearRecord
	err := c.getJSON(ctx, "/v1/yearly", q.Values(), &years)
	return years, err
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("mortsim: parsing %s: %w", path, err)
	}
	return nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mortsim: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mortsim/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mortsim: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("mortsim: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var eb server.ErrorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
			apiErr.Param = eb.Param
		}
		return nil, apiErr
	}
	return body, nil
}
