// Package telegram is a minimal Bot API client covering what a notifier
// needs: sending text messages to a chat.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkgherald/pkgherald/internal/httpx"
	"github.com/pkgherald/pkgherald/internal/logging"
)

// DefaultBaseURL is the public Bot API host.
const DefaultBaseURL = "https://api.telegram.org"

// Credentials identify the bot and the destination chat.
type Credentials struct {
	Token  string
	ChatID string
}

// Outcome records how one message send went. Ordinal is 1-based and matches
// the position of the message in the dispatched sequence.
type Outcome struct {
	Ordinal    int
	StatusCode int
	Err        error
}

// OK reports whether the send succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Client talks to one Bot API host.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for the given API host, DefaultBaseURL when
// empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpx.NewClient(30 * time.Second),
	}
}

// SendMessage posts one text message to the chat as a form-encoded request.
// The response body is discarded; only transport and HTTP-level success is
// observed.
func (c *Client) SendMessage(ctx context.Context, creds Credentials, text string) (int, error) {
	form := url.Values{}
	form.Set("chat_id", creds.ChatID)
	form.Set("text", text)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, creds.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("sendMessage failed with status %d", resp.StatusCode)
	}

	return resp.StatusCode, nil
}

// Dispatch sends the texts strictly in order, one request at a time, and
// returns an outcome per text. A failed send is recorded and the remaining
// texts are still attempted; conversation order matters more than any single
// delivery.
func (c *Client) Dispatch(ctx context.Context, creds Credentials, texts []string) []Outcome {
	log := logging.L("telegram")

	outcomes := make([]Outcome, 0, len(texts))
	for i, text := range texts {
		status, err := c.SendMessage(ctx, creds, text)
		outcomes = append(outcomes, Outcome{Ordinal: i + 1, StatusCode: status, Err: err})
		if err != nil {
			log.Warnw("message send failed", "ordinal", i+1, "status", status, "error", err)
			continue
		}
		log.Debugw("message sent", "ordinal", i+1, "status", status, "chars", len(text))
	}
	return outcomes
}
