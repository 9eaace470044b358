package ords

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/plamen9/airline-bingo/internal/infrastructure/configs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(configs.OrdsConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil)
	return client, srv
}

func TestCreateRoomHitsBingoEndpoint(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody CreateRoomParams

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(CreateRoomResponse{
			Envelope: Envelope{Success: true},
			RoomCode: "ABC123",
		})
	})

	res, err := client.CreateRoom(context.Background(), CreateRoomParams{
		AdminID:       "u1",
		AdminName:     "Alice",
		UseFreeCenter: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "/bingo/rooms", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "u1", gotBody.AdminID)
	assert.Equal(t, 1, gotBody.UseFreeCenter)
	assert.True(t, res.Success)
	assert.Equal(t, "ABC123", res.RoomCode)
}

func TestBusinessFailureDecodedNotErrored(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AckResponse{
			Envelope: Envelope{Success: false, Error: "Game already started"},
		})
	})

	res, err := client.Start(context.Background(), "ABC123", "u1")

	require.NoError(t, err, "a rejected action is not a transport error")
	assert.False(t, res.Success)
	assert.Equal(t, "Game already started", res.Error)
	assert.ErrorIs(t, res.Err(), ErrUpstream)
}

func TestEnvelopeDecodedOnNon200Status(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(AckResponse{
			Envelope: Envelope{Success: false, Error: "Not the room admin"},
		})
	})

	res, err := client.Reset(context.Background(), "ABC123", "u2")

	require.NoError(t, err)
	assert.Equal(t, "Not the room admin", res.Error)
}

func TestBasicAuthApplied(t *testing.T) {
	var gotUser, gotPass string
	var gotAuth bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotAuth = r.BasicAuth()
		json.NewEncoder(w).Encode(AckResponse{Envelope: Envelope{Success: true}})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(configs.OrdsConfig{
		BaseURL:  srv.URL,
		Timeout:  2 * time.Second,
		AuthType: "basic",
		Username: "bingo_app",
		Password: "secret",
	}, nil)

	_, err := client.JoinRoom(context.Background(), "ABC123", "u1", "Alice")

	require.NoError(t, err)
	require.True(t, gotAuth)
	assert.Equal(t, "bingo_app", gotUser)
	assert.Equal(t, "secret", gotPass)
}

func TestNoAuthHeaderByDefault(t *testing.T) {
	var gotAuth bool

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, gotAuth = r.BasicAuth()
		json.NewEncoder(w).Encode(AckResponse{Envelope: Envelope{Success: true}})
	})

	_, err := client.JoinRoom(context.Background(), "ABC123", "u1", "Alice")

	require.NoError(t, err)
	assert.False(t, gotAuth)
}

func TestCallTimesOutAgainstHungService(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)

	client := NewClient(configs.OrdsConfig{
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, nil)

	start := time.Now()
	_, err := client.GetRoom(context.Background(), "ABC123")

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGetCardDecodesOracleFlags(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bingo/rooms/ABC123/card/u1", r.URL.Path)
		json.NewEncoder(w).Encode(CardResponse{
			Envelope: Envelope{Success: true},
			Card: [][]CardCell{
				{{Airline: "Delta", Marked: 1}, {Airline: "United"}},
				{{Airline: "", Free: 1}, {Airline: "KLM"}},
			},
			HasBingo: 0,
		})
	})

	res, err := client.GetCard(context.Background(), "ABC123", "u1")
	require.NoError(t, err)

	card := res.ToDomain()
	require.Len(t, card, 2)
	assert.True(t, card[0][0].Marked)
	assert.False(t, card[0][1].Marked)
	assert.True(t, card[1][0].Free)
}

func TestClaimDecodesVerdict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bingo/rooms/ABC123/claim", r.URL.Path)

		var body struct {
			UserID string `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "u1", body.UserID)

		json.NewEncoder(w).Encode(ClaimResponse{
			Envelope:   Envelope{Success: true},
			Valid:      1,
			WinnerID:   "u1",
			WinnerName: "Alice",
		})
	})

	res, err := client.Claim(context.Background(), "ABC123", "u1")

	require.NoError(t, err)
	assert.Equal(t, 1, res.Valid)
	assert.Equal(t, "Alice", res.WinnerName)
}
