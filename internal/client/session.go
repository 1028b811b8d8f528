package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/whatbetter/whatapi/internal/apperrors"
	"github.com/whatbetter/whatapi/internal/metrics"
	"github.com/whatbetter/whatapi/internal/models"
)

// Login posts the credentials, then loads the account through the index action.
// The session secrets are only stored once both steps succeeded.
func (c *client) Login(ctx context.Context) (err error) {
	if c.Authenticated() {
		return nil
	}
	defer func() { metrics.RequestsTotal.WithLabelValues("login", metrics.Outcome(err)).Inc() }()

	c.logger.Info().Str("username", c.username).Msg("Logging in")

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	resp, err := c.send(ctx, c.httpClient, http.MethodPost, c.endpoint("login.php"),
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return &apperrors.AuthenticationError{Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Msg("Login rejected")
		return &apperrors.AuthenticationError{StatusCode: resp.StatusCode}
	}

	raw, err := c.Request(ctx, "index", nil)
	if err != nil {
		return &apperrors.AuthenticationError{Err: err}
	}

	var account models.AccountInfo
	if err := json.Unmarshal(raw, &account); err != nil {
		return &apperrors.AuthenticationError{Err: &apperrors.ProtocolError{
			Action: "index",
			Reason: "unexpected account payload",
			Body:   excerpt(raw),
			Err:    err,
		}}
	}
	if account.AuthKey == "" {
		return &apperrors.AuthenticationError{Err: errors.New("index response has no authkey")}
	}

	c.mu.Lock()
	c.account = &account
	c.mu.Unlock()

	c.logger.Info().Str("username", account.Username).Int("user_id", account.ID).Msg("Logged in")
	return nil
}

// Logout ends the session on the tracker and forgets the secrets locally.
// Calling it without a session does nothing.
func (c *client) Logout(ctx context.Context) error {
	account, ok := c.currentAccount()
	if !ok {
		return nil
	}

	logoutURL := c.endpoint("logout.php") + "?" + url.Values{"auth": {account.AuthKey}}.Encode()
	resp, err := c.send(ctx, c.httpClient, http.MethodGet, logoutURL, nil, "")
	switch {
	case err != nil:
		c.logger.Warn().Err(err).Msg("Logout request failed")
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Warn().Int("status", resp.StatusCode).Msg("Logout returned unexpected status")
			err = &apperrors.RequestError{Action: "logout", Status: resp.Status}
		}
	}
	metrics.RequestsTotal.WithLabelValues("logout", metrics.Outcome(err)).Inc()

	c.mu.Lock()
	c.account = nil
	c.mu.Unlock()

	c.logger.Info().Msg("Logged out")
	return nil
}

// Authenticated reports whether Login succeeded and Logout has not been called since.
func (c *client) Authenticated() bool {
	_, ok := c.currentAccount()
	return ok
}

// AccountInfo returns a copy of the logged in account.
func (c *client) AccountInfo() (*models.AccountInfo, error) {
	account, ok := c.currentAccount()
	if !ok {
		return nil, apperrors.ErrNotAuthenticated
	}
	info := *account
	return &info, nil
}
