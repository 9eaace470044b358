package ords

import (
	"errors"
	"fmt"

	"github.com/plamen9/airline-bingo/internal/domain"
)

// ErrUpstream covers non-success envelopes that carry no reason of their own.
var ErrUpstream = errors.New("data service reported failure")

// Envelope is the common header of every ORDS response. ORDS always answers
// with success plus an optional error message, even for rejected actions.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Err converts a non-success envelope into an error.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	if e.Error == "" {
		return ErrUpstream
	}
	return fmt.Errorf("%w: %s", ErrUpstream, e.Error)
}

// Oracle has no boolean type, so flag columns travel as 0/1 numbers.

type CreateRoomParams struct {
	AdminID       string `json:"adminId"`
	AdminName     string `json:"adminName"`
	UseFreeCenter int    `json:"useFreeCenter"`
}

type CreateRoomResponse struct {
	Envelope
	RoomCode string `json:"roomCode,omitempty"`
}

type RoomResponse struct {
	Envelope
	Status  string `json:"status,omitempty"`
	AdminID string `json:"adminId,omitempty"`
}

type AckResponse struct {
	Envelope
}

type PlayerRecord struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsAdmin     int    `json:"isAdmin"`
	HasBingo    int    `json:"hasBingo"`
}

type PlayersResponse struct {
	Envelope
	Players []PlayerRecord `json:"players,omitempty"`
}

type DrawResponse struct {
	Envelope
	AirlineID   int    `json:"airlineId,omitempty"`
	AirlineName string `json:"airlineName,omitempty"`
	DrawOrder   int    `json:"drawOrder,omitempty"`
}

type CardCell struct {
	Airline string `json:"airline"`
	Marked  int    `json:"marked"`
	Free    int    `json:"free"`
}

type CardResponse struct {
	Envelope
	Card     [][]CardCell `json:"card,omitempty"`
	HasBingo int          `json:"hasBingo,omitempty"`
}

// ToDomain converts the wire card into the model the win checks run on.
func (r *CardResponse) ToDomain() domain.Card {
	if r.Card == nil {
		return nil
	}
	card := make(domain.Card, len(r.Card))
	for i, row := range r.Card {
		card[i] = make([]domain.Cell, len(row))
		for j, cell := range row {
			card[i][j] = domain.Cell{
				Airline: cell.Airline,
				Marked:  cell.Marked == 1,
				Free:    cell.Free == 1,
			}
		}
	}
	return card
}

type DrawnAirlineRecord struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type DrawnResponse struct {
	Envelope
	Airlines []DrawnAirlineRecord `json:"airlines,omitempty"`
}

type ClaimResponse struct {
	Envelope
	Valid      int    `json:"valid"`
	WinnerID   string `json:"winnerId,omitempty"`
	WinnerName string `json:"winnerName,omitempty"`
}
