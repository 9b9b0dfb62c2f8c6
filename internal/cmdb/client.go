package cmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ThomasCrouzet/invgen/internal/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const tablePath = "/api/now/table/cmdb_ci"

// StatusError is returned when the CMDB answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for url: %s", e.Status, e.URL)
}

// Result is the outcome of a lookup for one MAC address.
type Result struct {
	MAC  string
	Data json.RawMessage
	Err  error
}

// Client queries the cmdb_ci table.
type Client struct {
	Credentials Credentials
	HTTPClient  *http.Client
	// Concurrency bounds the number of requests in flight. Values below 1
	// mean one request at a time.
	Concurrency int
	// Limiter paces requests. Nil means no pacing.
	Limiter *rate.Limiter
	Log     logger.Logger
}

// NewClient returns a client with the given request timeout, concurrency and
// request rate (requests per second, 0 for unlimited).
func NewClient(creds Credentials, timeout time.Duration, concurrency int, perSecond float64) *Client {
	c := &Client{
		Credentials: creds,
		HTTPClient:  &http.Client{Timeout: timeout},
		Concurrency: concurrency,
		Log:         logger.Nop(),
	}
	if perSecond > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return c
}

func (c *Client) lookupURL(mac string) string {
	q := url.Values{}
	q.Set("sysparm_query", "mac_address="+mac)
	return c.Credentials.Endpoint + tablePath + "?" + q.Encode()
}

// Lookup fetches the configuration items recorded for a MAC address and
// returns the raw JSON response body.
func (c *Client) Lookup(ctx context.Context, mac string) (json.RawMessage, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := c.lookupURL(mac)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.Credentials.Username, c.Credentials.Password)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.log().Debug("cmdb lookup",
		logger.String("mac", mac),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, URL: u}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("invalid JSON in response for %s", mac)
	}
	return json.RawMessage(body), nil
}

// LookupAll looks up every MAC address and returns the results in input
// order. An unparsable address or a failed lookup is recorded in its Result
// and does not stop the others; only cancellation of ctx ends the run early.
func (c *Client) LookupAll(ctx context.Context, macs []string) ([]Result, error) {
	results := make([]Result, len(macs))

	limit := c.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, mac := range macs {
		normalized, err := normalizeMAC(mac)
		if err != nil {
			results[i] = Result{MAC: mac, Err: err}
			c.log().Warn("skipping MAC address", logger.String("mac", mac), logger.Error(err))
			continue
		}
		g.Go(func() error {
			data, err := c.Lookup(gctx, normalized)
			results[i] = Result{MAC: normalized, Data: data, Err: err}
			if err != nil {
				c.log().Warn("cmdb lookup failed", logger.String("mac", normalized), logger.Error(err))
			}
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (c *Client) log() logger.Logger {
	if c.Log == nil {
		return logger.Nop()
	}
	return c.Log
}
