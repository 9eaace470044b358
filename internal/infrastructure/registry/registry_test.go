package registry

import (
	"testing"

	"github.com/plamen9/airline-bingo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesWaitingRoom(t *testing.T) {
	r := New()
	r.Ensure("ABC123")

	status, ok := r.Status("ABC123")
	require.True(t, ok)
	assert.Equal(t, domain.StatusWaiting, status)
}

func TestAddParticipantKeepsInsertionOrder(t *testing.T) {
	r := New()
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1", UserID: "u1"})
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c2", UserID: "u2"})
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c3", UserID: "u3"})

	participants := r.ListParticipants("ABC123")
	require.Len(t, participants, 3)
	assert.Equal(t, "c1", participants[0].ConnID)
	assert.Equal(t, "c2", participants[1].ConnID)
	assert.Equal(t, "c3", participants[2].ConnID)
}

func TestAddParticipantReplacesByConnID(t *testing.T) {
	r := New()
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1", UserID: "u1", DisplayName: "old"})
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1", UserID: "u1", DisplayName: "new"})

	participants := r.ListParticipants("ABC123")
	require.Len(t, participants, 1)
	assert.Equal(t, "new", participants[0].DisplayName)
}

func TestRemoveLastParticipantEvictsRoom(t *testing.T) {
	r := New()
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1", UserID: "u1"})
	r.SetStatus("ABC123", domain.StatusStarted)

	r.RemoveParticipant("ABC123", "c1")

	_, ok := r.Status("ABC123")
	assert.False(t, ok)
	assert.Zero(t, r.Count("ABC123"))
	assert.Nil(t, r.ListParticipants("ABC123"))
}

func TestRemoveParticipantUnknownRoomIsNoop(t *testing.T) {
	r := New()
	r.RemoveParticipant("NOPE99", "c1")
	assert.Zero(t, r.Count("NOPE99"))
}

func TestSetStatusOnMissingRoomIsDropped(t *testing.T) {
	r := New()
	r.SetStatus("NOPE99", domain.StatusStarted)

	_, ok := r.Status("NOPE99")
	assert.False(t, ok)
}

func TestAdminLifecycle(t *testing.T) {
	r := New()
	r.Ensure("ABC123")

	_, ok := r.Admin("ABC123")
	assert.False(t, ok, "no admin recorded yet")

	r.SetAdmin("ABC123", "u1")

	adminID, ok := r.Admin("ABC123")
	require.True(t, ok)
	assert.Equal(t, "u1", adminID)
}

func TestListParticipantsReturnsSnapshot(t *testing.T) {
	r := New()
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1", UserID: "u1"})

	snapshot := r.ListParticipants("ABC123")
	snapshot[0].UserID = "tampered"

	fresh := r.ListParticipants("ABC123")
	assert.Equal(t, "u1", fresh[0].UserID)
}

func TestCount(t *testing.T) {
	r := New()
	assert.Zero(t, r.Count("ABC123"))

	r.AddParticipant("ABC123", domain.Participant{ConnID: "c1"})
	r.AddParticipant("ABC123", domain.Participant{ConnID: "c2"})
	assert.Equal(t, 2, r.Count("ABC123"))

	r.RemoveParticipant("ABC123", "c1")
	assert.Equal(t, 1, r.Count("ABC123"))
}
