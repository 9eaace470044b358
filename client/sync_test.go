package client

import (
	"encoding/json"
	"testing"

	"github.com/plamen9/airline-bingo/internal/domain"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evt(t *testing.T, event, roomCode string, data any) Event {
	t.Helper()

	var raw json.RawMessage
	if data != nil {
		var err error
		raw, err = json.Marshal(data)
		require.NoError(t, err)
	}
	return Event{Event: event, RoomCode: roomCode, Data: raw}
}

func testCard() domain.Card {
	return domain.Card{
		{{Airline: "Delta"}, {Airline: "United"}, {Airline: "Qantas"}},
		{{Airline: "KLM"}, {Airline: "", Free: true}, {Airline: "ANA"}},
		{{Airline: "Iberia"}, {Airline: "Emirates"}, {Airline: "Lufthansa"}},
	}
}

func TestDrawEventsMarkCardAndDeriveBingo(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetRoom("ABC123", false)
	e.SetCard(testCard())

	require.NoError(t, e.Apply(evt(t, ws.EventGameStarted, "ABC123", nil)))
	require.NoError(t, e.Apply(evt(t, ws.EventAirlineDrawn, "ABC123", ws.AirlineDrawnPayload{AirlineID: 1, AirlineName: "KLM", DrawOrder: 1})))

	assert.False(t, e.HasBingo(), "one mark plus the free center is not a line yet")

	require.NoError(t, e.Apply(evt(t, ws.EventAirlineDrawn, "ABC123", ws.AirlineDrawnPayload{AirlineID: 2, AirlineName: "ANA", DrawOrder: 2})))

	assert.True(t, e.HasBingo(), "middle row completes through the free center")

	state := e.Snapshot()
	assert.Equal(t, domain.StatusStarted, state.Phase)
	require.Len(t, state.Drawn, 2)
	assert.Equal(t, "KLM", state.Drawn[0].Name)
	assert.True(t, state.Card[1][0].Marked)
}

func TestDrawForLabelNotOnCard(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetCard(testCard())

	require.NoError(t, e.Apply(evt(t, ws.EventAirlineDrawn, "ABC123", ws.AirlineDrawnPayload{AirlineID: 9, AirlineName: "Ryanair", DrawOrder: 1})))

	state := e.Snapshot()
	require.Len(t, state.Drawn, 1, "the drawn mirror records every draw")
	for _, row := range state.Card {
		for _, cell := range row {
			assert.False(t, cell.Marked)
		}
	}
}

func TestBingoWinnerFinishesGame(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetCard(testCard())

	require.NoError(t, e.Apply(evt(t, ws.EventGameStarted, "ABC123", nil)))
	require.NoError(t, e.Apply(evt(t, ws.EventBingoWinner, "ABC123", ws.BingoWinnerPayload{WinnerID: "u2", WinnerName: "Bob"})))

	state := e.Snapshot()
	assert.Equal(t, domain.StatusFinished, state.Phase)
	assert.Equal(t, "u2", state.WinnerID)
	assert.Equal(t, "Bob", state.WinnerName)
	assert.False(t, e.HasBingo(), "someone else winning grants no local eligibility")
}

func TestGameResetClearsMirrors(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetRoom("ABC123", false)
	e.SetCard(testCard())

	require.NoError(t, e.Apply(evt(t, ws.EventGameStarted, "ABC123", nil)))
	require.NoError(t, e.Apply(evt(t, ws.EventAirlineDrawn, "ABC123", ws.AirlineDrawnPayload{AirlineName: "KLM", DrawOrder: 1})))
	require.NoError(t, e.Apply(evt(t, ws.EventAirlineDrawn, "ABC123", ws.AirlineDrawnPayload{AirlineName: "ANA", DrawOrder: 2})))
	require.True(t, e.HasBingo())

	require.NoError(t, e.Apply(evt(t, ws.EventGameReset, "ABC123", nil)))

	state := e.Snapshot()
	assert.Equal(t, domain.StatusWaiting, state.Phase)
	assert.Empty(t, state.Card, "the card is void until re-dealt")
	assert.Empty(t, state.Drawn)
	assert.False(t, state.HasBingo)
	assert.Empty(t, state.WinnerID)
	assert.Equal(t, "ABC123", state.RoomCode, "membership survives a reset")
}

func TestRosterFollowsJoinAndLeave(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetRoom("ABC123", true)

	require.NoError(t, e.Apply(evt(t, ws.EventPlayerJoined, "ABC123", ws.PlayerJoinedPayload{UserID: "u2", DisplayName: "Bob", PlayerCount: 2})))
	require.NoError(t, e.Apply(evt(t, ws.EventPlayerJoined, "ABC123", ws.PlayerJoinedPayload{UserID: "u3", DisplayName: "Carol", PlayerCount: 3})))
	require.NoError(t, e.Apply(evt(t, ws.EventPlayerDisconnected, "ABC123", ws.PlayerLeftPayload{UserID: "u2", DisplayName: "Bob", PlayerCount: 2})))

	state := e.Snapshot()
	require.Len(t, state.Players, 1)
	assert.Equal(t, "u3", state.Players[0].UserID)
}

func TestKickedSelfClearsEverything(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetRoom("ABC123", false)
	e.SetCard(testCard())
	e.SetPlayers([]Player{{UserID: "u1", DisplayName: "Alice"}, {UserID: "u2", DisplayName: "Bob"}})

	require.NoError(t, e.Apply(evt(t, ws.EventPlayerKicked, "ABC123", ws.PlayerKickedPayload{UserID: "u1"})))

	state := e.Snapshot()
	assert.Empty(t, state.RoomCode)
	assert.Empty(t, state.Card)
	assert.Empty(t, state.Players)
	assert.Equal(t, domain.StatusWaiting, state.Phase)
}

func TestKickedOtherOnlyTrimsRoster(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetRoom("ABC123", false)
	e.SetCard(testCard())
	e.SetPlayers([]Player{{UserID: "u1", DisplayName: "Alice"}, {UserID: "u2", DisplayName: "Bob"}})

	require.NoError(t, e.Apply(evt(t, ws.EventPlayerKicked, "ABC123", ws.PlayerKickedPayload{UserID: "u2"})))

	state := e.Snapshot()
	assert.Equal(t, "ABC123", state.RoomCode)
	assert.NotEmpty(t, state.Card)
	require.Len(t, state.Players, 1)
	assert.Equal(t, "u1", state.Players[0].UserID)
}

func TestUnknownEventRejected(t *testing.T) {
	e := NewEngine("u1", "Alice")

	err := e.Apply(Event{Event: "flightDelayed"})
	assert.Error(t, err)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := NewEngine("u1", "Alice")
	e.SetCard(testCard())

	state := e.Snapshot()
	state.Card[0][0].Marked = true

	assert.False(t, e.Snapshot().Card[0][0].Marked)
}
