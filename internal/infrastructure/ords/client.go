package ords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/plamen9/airline-bingo/internal/infrastructure/configs"
	"github.com/plamen9/airline-bingo/internal/infrastructure/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the ORDS schema that owns all persistent game state: rooms,
// players, dealt cards, the draw sequence and authoritative win validation.
// Every call runs under a bounded deadline so a hung data service fails the
// caller's action instead of hanging it forever.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	authType string
	username string
	password string
	metrics  *metrics.Metrics
}

func NewClient(cfg configs.OrdsConfig, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout:  cfg.Timeout,
		authType: cfg.AuthType,
		username: cfg.Username,
		password: cfg.Password,
		metrics:  m,
	}
}

func (c *Client) CreateRoom(ctx context.Context, params CreateRoomParams) (*CreateRoomResponse, error) {
	res := &CreateRoomResponse{}
	err := c.do(ctx, http.MethodPost, "rooms", "create-room", params, res)
	return res, err
}

func (c *Client) GetRoom(ctx context.Context, roomCode string) (*RoomResponse, error) {
	res := &RoomResponse{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("rooms/%s", roomCode), "get-room", nil, res)
	return res, err
}

func (c *Client) JoinRoom(ctx context.Context, roomCode, userID, displayName string) (*AckResponse, error) {
	body := struct {
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
	}{userID, displayName}

	res := &AckResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/join", roomCode), "join-room", body, res)
	return res, err
}

func (c *Client) ListPlayers(ctx context.Context, roomCode string) (*PlayersResponse, error) {
	res := &PlayersResponse{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("rooms/%s/players", roomCode), "list-players", nil, res)
	return res, err
}

func (c *Client) Start(ctx context.Context, roomCode, adminID string) (*AckResponse, error) {
	res := &AckResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/start", roomCode), "start", adminBody(adminID), res)
	return res, err
}

func (c *Client) Draw(ctx context.Context, roomCode, adminID string) (*DrawResponse, error) {
	res := &DrawResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/draw", roomCode), "draw", adminBody(adminID), res)
	return res, err
}

func (c *Client) GetCard(ctx context.Context, roomCode, userID string) (*CardResponse, error) {
	res := &CardResponse{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("rooms/%s/card/%s", roomCode, userID), "get-card", nil, res)
	return res, err
}

func (c *Client) GetDrawn(ctx context.Context, roomCode string) (*DrawnResponse, error) {
	res := &DrawnResponse{}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("rooms/%s/drawn", roomCode), "get-drawn", nil, res)
	return res, err
}

func (c *Client) Claim(ctx context.Context, roomCode, userID string) (*ClaimResponse, error) {
	body := struct {
		UserID string `json:"userId"`
	}{userID}

	res := &ClaimResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/claim", roomCode), "claim", body, res)
	return res, err
}

func (c *Client) Reset(ctx context.Context, roomCode, adminID string) (*AckResponse, error) {
	res := &AckResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/reset", roomCode), "reset", adminBody(adminID), res)
	return res, err
}

func (c *Client) Kick(ctx context.Context, roomCode, adminID, userID string) (*AckResponse, error) {
	body := struct {
		AdminID string `json:"adminId"`
		UserID  string `json:"userId"`
	}{adminID, userID}

	res := &AckResponse{}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("rooms/%s/kick", roomCode), "kick", body, res)
	return res, err
}

func adminBody(adminID string) any {
	return struct {
		AdminID string `json:"adminId"`
	}{adminID}
}

func (c *Client) do(ctx context.Context, method, endpoint, operation string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.ObserveOrdsCall(operation, start, err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/bingo/%s", c.baseURL, endpoint)

	var reqBody *bytes.Buffer
	if body != nil {
		raw, merr := json.Marshal(body)
		if merr != nil {
			return fmt.Errorf("marshal request: %w", merr)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.authType == "basic" && c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ords request failed: %w", err)
	}
	defer res.Body.Close()

	// ORDS reports action rejections inside the envelope, so the body is
	// decoded regardless of the HTTP status.
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ords response (status %d): %w", res.StatusCode, err)
	}

	return nil
}
