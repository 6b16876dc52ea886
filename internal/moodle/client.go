package moodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/truck-tco-calculator/internal/model"
)

const (
	DefaultURL     = "https://learning.transportactiongroup.com"
	DefaultAPIBase = "https://learning.transportactiongroup.com/local/tco/endpoints"
	defaultTimeout = 8 * time.Second
)

// Client talks to the local_tco Moodle plugin. Every call forwards the browser's
// Moodle session cookie so the plugin can resolve the user.
type Client struct {
	baseURL string
	apiBase string
	http    *http.Client
}

func NewClient(baseURL, apiBase string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiBase: strings.TrimRight(strings.TrimSpace(apiBase), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type authPayload struct {
	Authenticated bool        `json:"authenticated"`
	User          *model.User `json:"user"`
}

// CheckSession never fails: any transport or decoding problem is treated as a guest.
func (c *Client) CheckSession(ctx context.Context, cookie string) model.Session {
	if cookie == "" {
		return model.Guest()
	}

	resp, err := c.do(ctx, http.MethodGet, "auth_check.php", nil, cookie, nil)
	if err != nil {
		log.Warn().Err(err).Msg("moodle auth check failed")
		return model.Guest()
	}
	defer resp.Body.Close()

	var payload authPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn().Err(err).Msg("moodle auth check returned unreadable payload")
		return model.Guest()
	}
	if !payload.Authenticated {
		return model.Guest()
	}
	return model.Session{Authenticated: true, User: payload.User, Cookie: cookie}
}

func (c *Client) Save(ctx context.Context, sess model.Session, rec model.SavedCalculation) (string, error) {
	if !sess.Authenticated {
		return "", model.ErrUnauthenticated
	}
	body, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("moodle: encode calculation: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "tco_save.php", nil, sess.Cookie, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		ID model.RecordID `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("moodle: decode save response: %w", err)
	}
	return string(payload.ID), nil
}

func (c *Client) List(ctx context.Context, sess model.Session, limit int) ([]model.SavedCalculation, error) {
	if !sess.Authenticated {
		return nil, model.ErrUnauthenticated
	}
	if limit <= 0 {
		limit = 10
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	resp, err := c.do(ctx, http.MethodGet, "tco_history.php", query, sess.Cookie, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Calculations []model.SavedCalculation `json:"calculations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("moodle: decode history: %w", err)
	}
	if payload.Calculations == nil {
		payload.Calculations = []model.SavedCalculation{}
	}
	return payload.Calculations, nil
}

func (c *Client) Delete(ctx context.Context, sess model.Session, id string) error {
	if !sess.Authenticated {
		return model.ErrUnauthenticated
	}
	resp, err := c.do(ctx, http.MethodDelete, "tco_delete.php", url.Values{"id": {id}}, sess.Cookie, nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) UpdateNotes(ctx context.Context, sess model.Session, id, notes string) error {
	if !sess.Authenticated {
		return model.ErrUnauthenticated
	}
	body, err := json.Marshal(map[string]string{"notes": notes})
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPatch, "tco_update.php", url.Values{"id": {id}}, sess.Cookie, body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) LoginURL(returnURL string) string {
	return c.baseURL + "/login/index.php?" + url.Values{"wantsurl": {returnURL}}.Encode()
}

func (c *Client) SignupURL() string {
	return c.baseURL + "/login/signup.php"
}

func (c *Client) LogoutURL() string {
	return c.baseURL + "/login/logout.php"
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, cookie string, body []byte) (*http.Response, error) {
	target := c.apiBase + "/" + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("moodle: build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moodle: %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return resp, nil
}

type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("moodle: %s status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("moodle: %s status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return model.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return model.ErrUnauthenticated
	}
	return nil
}
