// Package usersapi talks to the users REST endpoint the user table is fed from.
package usersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BorisRostovskiy/usertable/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	maxBodySize     = 10 << 20
	maxPayloadQuote = 128
)

type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// New returns a client for the users collection living at cfg.BaseURL
func New(cfg Config, log logrus.FieldLogger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("malformed users api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("users api url should be http(s), got %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.WithField("component", "users_client"),
	}, nil
}

// ListUsers issues a single GET against the users collection.
func (c *Client) ListUsers(ctx context.Context) ([]service.User, error) {
	body, err := c.do(ctx, "list users", http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	return decodeUsers(body)
}

// CreateUser posts a new record and returns it as stored, id included
func (c *Client) CreateUser(ctx context.Context, in service.User) (service.User, error) {
	payload, err := json.Marshal(struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}{Name: in.Name, Email: in.Email})
	if err != nil {
		return service.User{}, err
	}
	body, err := c.do(ctx, "create user", http.MethodPost, c.baseURL, payload)
	if err != nil {
		return service.User{}, err
	}
	var created service.User
	if err = json.Unmarshal(body, &created); err != nil {
		return service.User{}, &ShapeError{Payload: quote(body), Err: err}
	}
	return created, nil
}

func (c *Client) UpdateUser(ctx context.Context, in service.User) error {
	payload, err := json.Marshal(struct {
		Name  *string `json:"name,omitempty"`
		Email *string `json:"email,omitempty"`
	}{Name: nonEmpty(in.Name), Email: nonEmpty(in.Email)})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, "update user", http.MethodPut, c.userURL(in.ID), payload)
	return err
}

func (c *Client) DeleteUser(ctx context.Context, id service.UserID) error {
	_, err := c.do(ctx, "delete user", http.MethodDelete, c.userURL(id), nil)
	return err
}

// Ping reports whether the users endpoint answers at all
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", http.MethodGet, c.baseURL, nil)
	return err
}

func (c *Client) userURL(id service.UserID) string {
	return c.baseURL + "/" + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Op: op, StatusCode: res.StatusCode, Err: err}
	}
	c.log.WithFields(logrus.Fields{
		"method":      method,
		"uri":         target,
		"status_code": res.StatusCode,
		"bytes":       len(body),
	}).Debug(op)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		nerr := &NetworkError{Op: op, StatusCode: res.StatusCode}
		var ae apiError
		if json.Unmarshal(body, &ae) == nil {
			nerr.Message = ae.Message
		}
		return nil, nerr
	}
	return body, nil
}

// decodeUsers accepts only a JSON array whose elements are all objects.
// Anything else, including invalid JSON, is a ShapeError.
func decodeUsers(body []byte) ([]service.User, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &ShapeError{Payload: quote(trimmed)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &ShapeError{Payload: quote(trimmed), Err: err}
	}
	users := make([]service.User, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, &ShapeError{Payload: quote(trimmed), Err: fmt.Errorf("element %d is not an object", i)}
		}
		if err := json.Unmarshal(item, &users[i]); err != nil {
			return nil, &ShapeError{Payload: quote(trimmed), Err: fmt.Errorf("element %d: %w", i, err)}
		}
	}
	return users, nil
}

func quote(body []byte) string {
	if len(body) > maxPayloadQuote {
		return string(body[:maxPayloadQuote]) + "..."
	}
	return string(body)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
