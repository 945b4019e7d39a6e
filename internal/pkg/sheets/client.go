// Package sheets talks to the spreadsheet web-app that stores the roster and
// the attendance rows. Every operation is a single HTTP round-trip to a base
// URL chosen per call, so one client serves every session override.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/user"
)

const (
	actionGetUsers = "getUsers"
	actionGetRows  = "getAbsensi"
	actionSaveRow  = "saveAbsensi"
	actionDelete   = "deleteAbsensi"

	statusSuccess = "success"

	// bodies above this size are not a sheet export
	maxBodyBytes = 32 << 20
)

var (
	ErrBackendNotConfigured = errors.New("spreadsheet backend url is not configured")
	ErrMalformedResponse    = errors.New("spreadsheet backend returned a malformed response")
)

// APIError is a non-2xx status, or a JSON reply whose status is not
// "success".
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("spreadsheet backend error [%d %s]: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("spreadsheet backend error [%d %s]", e.StatusCode, e.Status)
}

// Client implements user.Directory and attendance.Backend.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client. A zero timeout means requests are bounded only
// by their context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewClientWithHTTP wraps an existing http.Client.
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

var (
	_ user.Directory     = (*Client)(nil)
	_ attendance.Backend = (*Client)(nil)
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Users   json.RawMessage `json:"users"`
}

// ListUsers implements user.Directory.
func (c *Client) ListUsers(ctx context.Context, baseURL string) ([]user.Identity, error) {
	body, err := c.get(ctx, baseURL, url.Values{"action": {actionGetUsers}})
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Status != statusSuccess {
		return nil, &APIError{StatusCode: http.StatusOK, Status: env.Status, Message: env.Message}
	}
	if len(env.Users) == 0 || string(env.Users) == "null" {
		return nil, fmt.Errorf("%w: users field missing", ErrMalformedResponse)
	}

	var users []user.Identity
	if err := json.Unmarshal(env.Users, &users); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrMalformedResponse, err)
	}
	return users, nil
}

// ListRecords implements attendance.Backend.
func (c *Client) ListRecords(ctx context.Context, baseURL, email string) ([]attendance.Record, error) {
	body, err := c.get(ctx, baseURL, url.Values{"action": {actionGetRows}, "email": {email}})
	if err != nil {
		return nil, err
	}

	raw, err := extractRecords(body)
	if err != nil {
		return nil, err
	}

	records := make([]attendance.Record, 0, len(raw))
	for i, item := range raw {
		var r attendance.Record
		if err := json.Unmarshal(item, &r); err != nil {
			// a non-object entry is a row the sheet could not export
			if _, isObject := asObject(item); !isObject {
				continue
			}
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedResponse, i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// SaveRecord implements attendance.Backend.
func (c *Client) SaveRecord(ctx context.Context, baseURL string, record attendance.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return c.post(ctx, baseURL, url.Values{
		"action": {actionSaveRow},
		"data":   {string(data)},
	})
}

// DeleteRecord implements attendance.Backend.
func (c *Client) DeleteRecord(ctx context.Context, baseURL, rowID, email string) error {
	return c.post(ctx, baseURL, url.Values{
		"action": {actionDelete},
		"rowId":  {rowID},
		"email":  {email},
	})
}

func (c *Client) get(ctx context.Context, baseURL string, query url.Values) ([]byte, error) {
	endpoint, err := buildURL(baseURL, query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	return c.do(req)
}

func (c *Client) post(ctx context.Context, baseURL string, form url.Values) error {
	endpoint, err := buildURL(baseURL, nil)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Status != statusSuccess {
		return &APIError{StatusCode: http.StatusOK, Status: env.Status, Message: env.Message}
	}
	return nil
}

// do sends req and returns the body of a 2xx reply. Redirects are followed,
// which the web-app relies on for POST replies.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}
	return body, nil
}

func buildURL(baseURL string, query url.Values) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", ErrBackendNotConfigured
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid spreadsheet backend url %q", baseURL)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
