// Package client talks to the matchstack HTTP API. It implements
// conversation.Store so a conversation can run against a remote server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matchstack-dev/matchstack/internal/api/dto"
	"github.com/matchstack-dev/matchstack/internal/conversation"
	"github.com/matchstack-dev/matchstack/internal/domain"
)

// DefaultBaseURL is used when MATCHSTACK_URL is not set.
const DefaultBaseURL = "http://localhost:8080"

// Config holds the connection settings of a client.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// ConfigFromEnv reads MATCHSTACK_URL, MATCHSTACK_TOKEN and MATCHSTACK_TIMEOUT_SECONDS.
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL: os.Getenv("MATCHSTACK_URL"),
		Token:   os.Getenv("MATCHSTACK_TOKEN"),
		Timeout: 30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if raw := os.Getenv("MATCHSTACK_TIMEOUT_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	return cfg
}

// Client is a matchstack API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ conversation.Store = (*Client)(nil)

// New creates a client.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetToken replaces the bearer token used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response rendered by the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// Login exchanges credentials for a session and keeps its token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.SessionResponse, error) {
	var out dto.SessionResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Auth.Token
	return &out, nil
}

// Me returns the caller and the profiles they own.
func (c *Client) Me(ctx context.Context) (*dto.MeResponse, error) {
	var out dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCreators queries the creator directory.
func (c *Client) ListCreators(ctx context.Context, query dto.DirectoryQuery) (*dto.DirectoryResponse, error) {
	params := url.Values{}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("role_type", query.RoleType)
	set("pricing_tier", query.PricingTier)
	set("availability", query.Availability)
	set("engagement", query.Engagement)
	set("q", query.Search)
	set("niches", query.Niches)

	path := "/creators"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out dto.DirectoryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMatchWithParties fetches the match header.
func (c *Client) GetMatchWithParties(ctx context.Context, matchID string) (*domain.MatchParties, error) {
	var out dto.MatchPartiesResponse
	if err := c.do(ctx, http.MethodGet, matchPath(matchID, ""), nil, &out); err != nil {
		return nil, matchError(err)
	}
	parties := out.ToDomain()
	return &parties, nil
}

// ListMessages fetches the history of a match, oldest first.
func (c *Client) ListMessages(ctx context.Context, matchID string) ([]domain.Message, error) {
	var out []dto.MessageResponse
	if err := c.do(ctx, http.MethodGet, matchPath(matchID, "/messages"), nil, &out); err != nil {
		return nil, matchError(err)
	}
	messages := make([]domain.Message, 0, len(out))
	for _, m := range out {
		messages = append(messages, m.ToDomain())
	}
	return messages, nil
}

// CreateMessage posts a message. The server derives the sender role from
// the token, so role is not transmitted.
func (c *Client) CreateMessage(ctx context.Context, matchID string, _ domain.SenderRole, body string) (*domain.Message, error) {
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodPost, matchPath(matchID, "/messages"), dto.SendMessageRequest{Body: body}, &out); err != nil {
		return nil, matchError(err)
	}
	msg := out.ToDomain()
	return &msg, nil
}

func matchPath(matchID, suffix string) string {
	return "/matches/" + url.PathEscape(matchID) + suffix
}

func matchError(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", conversation.ErrMatchNotFound, apiErr.Message)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", conversation.ErrNoAccess, apiErr.Message)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Data) == 0 {
		return errors.New("response has no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	envelope := struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	apiErr := &APIError{Status: status}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
