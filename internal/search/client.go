// Package search is a client for an instant-answer web search API
// (DuckDuckGo compatible). Lookups never return an error value: every
// outcome, good or bad, is described by a Result.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.duckduckgo.com/"
	DefaultTimeout = 5 * time.Second

	maxRelated     = 3
	maxSnippetRune = 100
	maxBodyBytes   = 2 << 20
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Reason says why a lookup did not produce an answer.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTimeout
	ReasonTransport
	ReasonStatus
	ReasonDecode
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonTimeout:
		return "timeout"
	case ReasonTransport:
		return "transport"
	case ReasonStatus:
		return "status"
	case ReasonDecode:
		return "decode"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Answer is the useful part of an instant-answer payload.
type Answer struct {
	Abstract    string
	AbstractURL string
	Related     []string
}

// Result is either an Answer (Reason == ReasonNone) or a failure.
type Result struct {
	Answer *Answer
	Reason Reason
	Err    error
}

func (r Result) OK() bool {
	return r.Reason == ReasonNone && r.Answer != nil
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Lookup issues one GET for query, bounded by the client timeout. No retries.
func (c *Client) Lookup(ctx context.Context, query string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint, err := c.endpoint(query)
	if err != nil {
		return c.fail(query, ReasonTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fail(query, ReasonTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return c.fail(query, ReasonTimeout, err)
		}
		return c.fail(query, ReasonTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(query, ReasonStatus, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return c.fail(query, ReasonTimeout, err)
		}
		return c.fail(query, ReasonTransport, err)
	}

	answer, err := ParseAnswer(body)
	if err != nil {
		return c.fail(query, ReasonDecode, err)
	}

	c.logger.Debug("Search lookup completed",
		zap.String("query", query),
		zap.Bool("empty", answer.Empty()),
		zap.Int("related", len(answer.Related)),
	)
	return Result{Answer: answer}
}

func (c *Client) endpoint(query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid search base url: %w", err)
	}
	params := u.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("pretty", "1")
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (c *Client) fail(query string, reason Reason, err error) Result {
	c.logger.Warn("Search lookup failed",
		zap.String("query", query),
		zap.Stringer("reason", reason),
		zap.Error(err),
	)
	return Result{Reason: reason, Err: err}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// ParseAnswer pulls Abstract, AbstractURL and the first three
// RelatedTopics entries out of a payload. Related entries that are not
// objects with a Text field (topic groups) use up a slot but add nothing.
func ParseAnswer(body []byte) (*Answer, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON payload")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.New("payload is not an object")
	}

	answer := &Answer{
		Abstract:    root.Get("Abstract").String(),
		AbstractURL: root.Get("AbstractURL").String(),
	}

	related := root.Get("RelatedTopics")
	if related.IsArray() {
		for i, topic := range related.Array() {
			if i == maxRelated {
				break
			}
			if !topic.IsObject() {
				continue
			}
			if text := topic.Get("Text").String(); text != "" {
				answer.Related = append(answer.Related, text)
			}
		}
	}

	return answer, nil
}

func (a *Answer) Empty() bool {
	return a == nil || (a.Abstract == "" && a.AbstractURL == "" && len(a.Related) == 0)
}

// Format renders the answer as the markdown-ish block shown in chat.
// An empty answer formats to "".
func (a *Answer) Format() string {
	if a.Empty() {
		return ""
	}

	var b strings.Builder
	if a.Abstract != "" {
		fmt.Fprintf(&b, "**सारांश:** %s\n\n", a.Abstract)
	}
	if a.AbstractURL != "" {
		fmt.Fprintf(&b, "**स्रोत:** %s\n\n", a.AbstractURL)
	}
	if len(a.Related) > 0 {
		b.WriteString("**संबंधित विषय:**\n")
		for _, text := range a.Related {
			fmt.Fprintf(&b, "- %s...\n", truncate(text, maxSnippetRune))
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
