package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a", Status: "created"}, {ID: "b", Status: "created"}, {ID: "c", Status: "created"}})

	s.Replace(Parcel{ID: "b", Status: "collected"})

	parcels := s.Parcels()
	require.Len(t, parcels, 3)
	assert.Equal(t, "b", parcels[1].ID, "replaced parcel keeps its position")
	assert.Equal(t, "collected", parcels[1].Status)
}

func TestStore_ReplaceUnknownAppends(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a"}})

	s.Replace(Parcel{ID: "z", Status: "created"})

	parcels := s.Parcels()
	require.Len(t, parcels, 2)
	assert.Equal(t, "z", parcels[1].ID)
}

func TestStore_LastResponseWins(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a", Status: "created"}})

	// Two responses for the same parcel resolve out of order; whichever is
	// applied last is what the cache shows.
	s.Replace(Parcel{ID: "a", Status: "in_transit"})
	s.Replace(Parcel{ID: "a", Status: "collected"})

	p, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "collected", p.Status)
}

func TestStore_SelectionFollowsReplacement(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a", Status: "created"}})
	s.Select("a")

	s.Replace(Parcel{ID: "a", Status: "delivered"})

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "delivered", selected.Status, "detail view sees the committed state")
}

func TestStore_SetParcelsClearsStaleSelection(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a"}})
	s.Select("a")

	s.SetParcels([]Parcel{{ID: "b"}})

	_, ok := s.Selected()
	assert.False(t, ok, "selection of a parcel gone from the listing is cleared")
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a"}, {ID: "b"}})
	s.Select("a")
	s.SetHistory("a", []StatusChange{{NewStatus: "created"}})

	s.Remove("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Len(t, s.Parcels(), 1)
	assert.Nil(t, s.History("a"))
}

func TestStore_HistoryIsCopied(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a"}})

	in := []StatusChange{{OldStatus: "created", NewStatus: "collected"}}
	s.SetHistory("a", in)
	in[0].NewStatus = "mutated"

	got := s.History("a")
	require.Len(t, got, 1)
	assert.Equal(t, "collected", got[0].NewStatus, "the cache must not alias caller slices")

	got[0].NewStatus = "mutated-again"
	assert.Equal(t, "collected", s.History("a")[0].NewStatus)
}

func TestStore_SetParcelsDropsStaleHistory(t *testing.T) {
	s := NewStore()
	s.SetParcels([]Parcel{{ID: "a"}, {ID: "b"}})
	s.SetHistory("a", []StatusChange{{NewStatus: "created"}})
	s.SetHistory("b", []StatusChange{{NewStatus: "created"}})

	s.SetParcels([]Parcel{{ID: "b"}})

	assert.Nil(t, s.History("a"), "history of parcels gone from the listing is dropped")
	assert.NotNil(t, s.History("b"))
}
