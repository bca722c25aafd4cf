// Package remote talks to the REST API the gateways try before the local
// database. Every call returns a Result; nothing here retries.
package remote

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

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const maxBody = 8 << 20

type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

// New returns a client for baseURL. An empty baseURL gives a client whose
// calls are all Skipped. timeout 0 means no timeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.Named("remote"),
	}
}

func (c *Client) Enabled() bool { return c != nil && c.base != "" }

func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.base
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body any) (any, error) {
	u := c.base + path
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("url", u),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Title: pageTitle(resp.Header, raw)}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		// dev servers answer unknown paths with their index page
		if title := pageTitle(resp.Header, raw); title != "" {
			return nil, fmt.Errorf("resposta HTML %q em vez de JSON: %w", title, err)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// pageTitle extracts <title> from an HTML body, "" otherwise.
func pageTitle(h http.Header, body []byte) string {
	mt, _, _ := mime.ParseMediaType(h.Get("Content-Type"))
	if mt != "text/html" && !bytes.HasPrefix(bytes.TrimSpace(body), []byte("<")) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Title returns the HTML page title carried by err, if any.
func Title(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Title
	}
	return ""
}
