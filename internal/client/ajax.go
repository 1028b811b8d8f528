package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"unicode/utf8"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/metrics"
)

const maxExcerpt = 512

// ajaxEnvelope is the wrapper every ajax.php answer comes in
type ajaxEnvelope struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
	Error    string          `json:"error"`
}

// Request calls ajax.php with the given action. The session authkey is sent
// when known; params override any colliding key.
func (c *client) Request(ctx context.Context, action string, params url.Values) (raw json.RawMessage, err error) {
	defer func() { metrics.RequestsTotal.WithLabelValues("ajax:"+action, metrics.Outcome(err)).Inc() }()

	query := url.Values{}
	query.Set("action", action)
	if authKey := c.authKey(); authKey != "" {
		query.Set("auth", authKey)
	}
	for key, values := range params {
		query[key] = append([]string(nil), values...)
	}

	c.logger.Debug().Str("action", action).Msg("AJAX request")

	resp, err := c.send(ctx, c.ajaxClient, http.MethodGet, c.endpoint("ajax.php")+"?"+query.Encode(), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		return nil, &apperrors.ProtocolError{
			Action: action,
			Reason: fmt.Sprintf("redirected to %q", resp.Header.Get("Location")),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", action, err)
	}

	var envelope ajaxEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &apperrors.ProtocolError{
			Action: action,
			Reason: fmt.Sprintf("response is not JSON (HTTP %d)", resp.StatusCode),
			Body:   excerpt(body),
			Err:    err,
		}
	}
	if envelope.Status != "success" {
		return nil, &apperrors.RequestError{
			Action:  action,
			Status:  envelope.Status,
			Message: envelope.Error,
			Body:    body,
		}
	}

	return envelope.Response, nil
}

// excerpt shortens body for error messages without splitting a UTF-8 sequence.
func excerpt(body []byte) string {
	if len(body) <= maxExcerpt {
		return string(body)
	}
	cut := maxExcerpt
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
