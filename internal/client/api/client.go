// Package api is a small client of the toldya HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CreateRequest is the body of POST /messages.
type CreateRequest struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	RevealTime int64  `json:"revealTime"`
}

// Message is the body of a successful GET /messages. Message is nil while
// the capsule is still sealed.
type Message struct {
	Name       string      `json:"name"`
	Subject    string      `json:"subject"`
	RevealTime json.Number `json:"revealTime"`
	CreateTime json.Number `json:"messageCreateTime"`
	Message    *string     `json:"message"`
}

// Error is a non-success answer of the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client of the server at baseURL. A nil hc means
// http.DefaultClient.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Create stores a new message and returns its id.
func (c *Client) Create(ctx context.Context, req CreateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var out struct {
		ResponseMessage string `json:"response_message"`
	}
	status, err := c.do(httpReq, &out)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", &Error{Status: status, Message: out.ResponseMessage}
	}
	return out.ResponseMessage, nil
}

// Get fetches the message with the given id.
func (c *Client) Get(ctx context.Context, id string) (*Message, error) {
	u := c.baseURL + "/messages?" + url.Values{"message_id": {id}}.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Message
		ResponseMessage string `json:"response_message"`
	}
	status, err := c.do(httpReq, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &Error{Status: status, Message: out.ResponseMessage}
	}
	return &out.Message, nil
}

func (c *Client) do(req *http.Request, out any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
