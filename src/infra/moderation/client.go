// Package moderation provides a ports.Moderator backed by the APILayer
// bad_words API.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"qaboard/src/core/domain"
	"qaboard/src/core/ports"
)

// Ensure Client conforms to the ports.Moderator interface at compile time.
var _ ports.Moderator = (*Client)(nil)

// Options configures a Client.
type Options struct {
	// URL is the bad_words endpoint, without query string.
	URL string
	// APIKey is sent in the apikey header.
	APIKey string
	// CensorCharacter replaces flagged characters (default "*").
	CensorCharacter string
	// Retry is the retry policy applied to every Check call.
	Retry RetryPolicy
}

// Client talks to the moderation API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	retry      RetryPolicy
	log        *slog.Logger
}

// BadWord is one flagged word in a moderation response.
type BadWord struct {
	Original    string `json:"original"`
	Word        string `json:"word"`
	Deviations  int    `json:"deviations"`
	Info        int    `json:"info"`
	ReplacedLen int    `json:"replacedLen"`
}

// BadWordsResponse is the success body of the moderation API.
type BadWordsResponse struct {
	Content         string    `json:"content"`
	BadWordsTotal   int       `json:"bad_words_total"`
	BadWordsList    []BadWord `json:"bad_words_list"`
	CensoredContent string    `json:"censored_content"`
}

// New constructs a Client that uses the provided http.Client.
func New(httpClient *http.Client, opts Options, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid moderation url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid moderation url %q: scheme and host are required", opts.URL)
	}
	censor := opts.CensorCharacter
	if censor == "" {
		censor = "*"
	}
	q := u.Query()
	q.Set("censor_character", censor)
	u.RawQuery = q.Encode()

	return &Client{
		httpClient: httpClient,
		endpoint:   u.String(),
		apiKey:     opts.APIKey,
		retry:      opts.Retry,
		log:        log,
	}, nil
}

// Check submits text for moderation and returns the censored content.
//
// Transport failures and statuses the retry policy deems transient are
// retried with exponential backoff. Once retries are exhausted, or for a
// permanent status, the failure is returned as ErrModerationTransport,
// ErrModerationClient (4xx) or ErrModerationServer (5xx).
func (c *Client) Check(ctx context.Context, text string) (string, error) {
	start := time.Now()
	defer func() { checkDuration.Observe(time.Since(start).Seconds()) }()

	var censored string
	operation := func() error {
		res, retry, err := c.attempt(ctx, text)
		if err != nil {
			if !retry || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		censored = res
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.log.Warn("moderation attempt failed, retrying", "error", err, "wait", wait)
	}

	if err := backoff.RetryNotify(operation, c.retry.backOff(ctx), notify); err != nil {
		var de *domain.DomainError
		if !errors.As(err, &de) {
			// The schedule was cut short by ctx.
			err = domain.NewModerationTransportError("request abandoned", err)
		}
		checksTotal.WithLabelValues("error").Inc()
		return "", err
	}

	checksTotal.WithLabelValues("ok").Inc()
	return censored, nil
}

// attempt performs a single request. It reports whether a failure may be
// retried.
func (c *Client) attempt(ctx context.Context, text string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(text))
	if err != nil {
		return "", false, domain.NewModerationTransportError("could not create request", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		attemptsTotal.WithLabelValues("transport").Inc()
		return "", true, domain.NewModerationTransportError("could not send request", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		attemptsTotal.WithLabelValues("transport").Inc()
		return "", true, domain.NewModerationTransportError("could not read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome := "server"
		if resp.StatusCode < 500 {
			outcome = "client"
		}
		attemptsTotal.WithLabelValues(outcome).Inc()
		return "", c.retry.retryable(resp.StatusCode),
			domain.NewModerationStatusError(resp.StatusCode, upstreamMessage(b))
	}

	var out BadWordsResponse
	if err := json.Unmarshal(b, &out); err != nil {
		attemptsTotal.WithLabelValues("decode").Inc()
		return "", false, domain.NewModerationTransportError("could not decode response", err)
	}
	attemptsTotal.WithLabelValues("ok").Inc()

	if out.BadWordsTotal > 0 {
		c.log.Debug("moderation flagged words", "bad_words_total", out.BadWordsTotal)
	}
	return out.CensoredContent, false, nil
}

// upstreamMessage extracts {"message": ...} from an error body, falling back
// to the raw text.
func upstreamMessage(b []byte) string {
	var detail struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &detail); err == nil && detail.Message != "" {
		return detail.Message
	}
	return strings.TrimSpace(string(b))
}
