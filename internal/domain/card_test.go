package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCard(labels [][]string) Card {
	card := make(Card, len(labels))
	for i, row := range labels {
		card[i] = make([]Cell, len(row))
		for j, label := range row {
			card[i][j] = Cell{Airline: label}
		}
	}
	return card
}

func TestMarkMarksEveryMatchingCell(t *testing.T) {
	card := newCard([][]string{
		{"Delta", "United", "Delta"},
		{"Qantas", "Delta", "KLM"},
		{"Iberia", "ANA", "Emirates"},
	})

	matched := card.Mark("Delta")

	assert.Equal(t, 3, matched)
	assert.True(t, card[0][0].Marked)
	assert.True(t, card[0][2].Marked)
	assert.True(t, card[1][1].Marked)
	assert.False(t, card[0][1].Marked)
}

func TestMarkIsIdempotent(t *testing.T) {
	card := newCard([][]string{
		{"Delta", "United"},
		{"Qantas", "KLM"},
	})

	require.Equal(t, 1, card.Mark("United"))
	require.Equal(t, 1, card.Mark("United"))

	grid := card.MarkedGrid()
	assert.True(t, grid[0][1])
	assert.False(t, grid[0][0])
}

func TestMarkUnknownLabelChangesNothing(t *testing.T) {
	card := newCard([][]string{
		{"Delta", "United"},
		{"Qantas", "KLM"},
	})

	assert.Equal(t, 0, card.Mark("Ryanair"))
	for i := range card {
		for j := range card[i] {
			assert.False(t, card[i][j].Marked)
		}
	}
}

func TestFreeCellCountsAsMarked(t *testing.T) {
	card := newCard([][]string{
		{"Delta", "United", "Qantas"},
		{"KLM", "", "ANA"},
		{"Iberia", "Emirates", "Lufthansa"},
	})
	card[1][1].Free = true

	card.Mark("KLM")
	card.Mark("ANA")

	// Middle row completes through the free center without a draw for it.
	require.True(t, HasBingo(card.MarkedGrid()))

	lines := WinningLines(card.MarkedGrid())
	assert.Equal(t, []Coord{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, lines)
}

func TestHasBingoRow(t *testing.T) {
	grid := [][]bool{
		{true, true, true},
		{false, true, false},
		{false, false, true},
	}
	assert.True(t, HasBingo(grid))
}

func TestHasBingoColumn(t *testing.T) {
	grid := [][]bool{
		{false, true, false},
		{false, true, false},
		{false, true, false},
	}
	assert.True(t, HasBingo(grid))
}

func TestHasBingoDiagonals(t *testing.T) {
	main := [][]bool{
		{true, false, false},
		{false, true, false},
		{false, false, true},
	}
	assert.True(t, HasBingo(main))

	anti := [][]bool{
		{false, false, true},
		{false, true, false},
		{true, false, false},
	}
	assert.True(t, HasBingo(anti))
}

func TestNoBingoOnPartialLines(t *testing.T) {
	grid := [][]bool{
		{true, true, false},
		{true, false, true},
		{false, true, true},
	}
	assert.False(t, HasBingo(grid))
	assert.Empty(t, WinningLines(grid))
}

func TestWinningLinesOverlapKeptPerLine(t *testing.T) {
	// Row 1 and column 2 are both satisfied; their shared cell shows up in
	// each line's run.
	grid := [][]bool{
		{false, false, true},
		{true, true, true},
		{false, false, true},
	}

	lines := WinningLines(grid)
	require.Len(t, lines, 6)

	assert.Equal(t, []Coord{
		{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2},
		{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2},
	}, lines)
}

func TestWinningLinesEmptyGrid(t *testing.T) {
	assert.Nil(t, WinningLines(nil))
	assert.False(t, HasBingo(nil))
}

func TestMarkedGridReflectsMarksAndFree(t *testing.T) {
	card := newCard([][]string{
		{"Delta", "United"},
		{"Qantas", "KLM"},
	})
	card[0][0].Free = true
	card.Mark("KLM")

	assert.Equal(t, [][]bool{
		{true, false},
		{false, true},
	}, card.MarkedGrid())
}
