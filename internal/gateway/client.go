package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/middleware"
	"shareit/internal/pkg/jwt"
)

// Client forwards validated calls to the server tier over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *jwt.Service
}

// Call describes one forwarded request. UserID 0 sends no user header.
type Call struct {
	Method    string
	Path      string
	RawQuery  string
	UserID    int64
	RequestID string
	Body      any
}

// Reply is the server's answer, relayed to the caller untouched.
type Reply struct {
	Status      int
	ContentType string
	Body        []byte
}

// NewClient builds a client for baseURL. A nil signer sends unsigned requests.
func NewClient(baseURL string, timeout time.Duration, signer *jwt.Service) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		signer:     signer,
	}
}

func (c *Client) Forward(ctx context.Context, call Call) (*Reply, error) {
	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + call.Path
	if call.RawQuery != "" {
		target += "?" + call.RawQuery
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.UserID != 0 {
		req.Header.Set(middleware.HeaderUserID, strconv.FormatInt(call.UserID, 10))
	}
	if call.RequestID != "" {
		req.Header.Set(middleware.HeaderRequestID, call.RequestID)
	}
	if c.signer != nil {
		token, err := c.signer.GenerateToken(call.UserID)
		if err != nil {
			return nil, fmt.Errorf("sign service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Reply, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read server response: %w", err)
	}
	return &Reply{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        payload,
	}, nil
}
