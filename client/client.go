// Package client is the Go counterpart of the browser client: a REST client
// for the backend room API plus a websocket listener and a sync engine that
// mirrors room state locally.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/plamen9/airline-bingo/internal/infrastructure/ords"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the backend at baseURL. Pass nil to use a default
// HTTP client with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) CreateRoom(ctx context.Context, adminID, adminName string, useFreeCenter bool) (*ords.CreateRoomResponse, error) {
	free := 0
	if useFreeCenter {
		free = 1
	}
	body := map[string]any{"adminId": adminID, "adminName": adminName, "useFreeCenter": free}

	var res ords.CreateRoomResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetRoom(ctx context.Context, roomCode string) (*ords.RoomResponse, error) {
	var res ords.RoomResponse
	if err := c.do(ctx, http.MethodGet, "/api/rooms/"+roomCode, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Join(ctx context.Context, roomCode, userID, displayName string) (*ords.AckResponse, error) {
	body := map[string]any{"userId": userID, "displayName": displayName}

	var res ords.AckResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/join", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Players(ctx context.Context, roomCode string) (*ords.PlayersResponse, error) {
	var res ords.PlayersResponse
	if err := c.do(ctx, http.MethodGet, "/api/rooms/"+roomCode+"/players", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Start(ctx context.Context, roomCode, adminID string) (*ords.AckResponse, error) {
	var res ords.AckResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/start", map[string]any{"adminId": adminID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Draw(ctx context.Context, roomCode, adminID string) (*ords.DrawResponse, error) {
	var res ords.DrawResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/draw", map[string]any{"adminId": adminID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Card(ctx context.Context, roomCode, userID string) (*ords.CardResponse, error) {
	var res ords.CardResponse
	if err := c.do(ctx, http.MethodGet, "/api/rooms/"+roomCode+"/card/"+userID, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Drawn(ctx context.Context, roomCode string) (*ords.DrawnResponse, error) {
	var res ords.DrawnResponse
	if err := c.do(ctx, http.MethodGet, "/api/rooms/"+roomCode+"/drawn", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Claim(ctx context.Context, roomCode, userID string) (*ords.ClaimResponse, error) {
	var res ords.ClaimResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/claim", map[string]any{"userId": userID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Reset(ctx context.Context, roomCode, adminID string) (*ords.AckResponse, error) {
	var res ords.AckResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/reset", map[string]any{"adminId": adminID}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Kick(ctx context.Context, roomCode, adminID, userID string) (*ords.AckResponse, error) {
	body := map[string]any{"adminId": adminID, "userId": userID}

	var res ords.AckResponse
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomCode+"/kick", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// do issues the request and decodes the response envelope. Business failures
// arrive as success:false payloads and are returned to the caller decoded,
// not as errors; only transport and decode problems error out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}
