package console

import "sync"

// Store is the console's in-memory parcel cache. It is written only with
// payloads the server returned; optimistic local edits are not a thing here,
// so whatever response arrives last wins.
type Store struct {
	mu         sync.RWMutex
	parcels    []Parcel
	history    map[string][]StatusChange
	selectedID string
}

func NewStore() *Store {
	return &Store{history: make(map[string][]StatusChange)}
}

// SetParcels replaces the whole cached list, as after a fresh listing. The
// selection is kept when the selected parcel is still present, cleared
// otherwise; history of parcels gone from the listing is dropped.
func (s *Store) SetParcels(parcels []Parcel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parcels = make([]Parcel, len(parcels))
	copy(s.parcels, parcels)

	if s.selectedID != "" && s.indexOf(s.selectedID) < 0 {
		s.selectedID = ""
	}
	for id := range s.history {
		if s.indexOf(id) < 0 {
			delete(s.history, id)
		}
	}
}

// Replace merges one server-returned parcel into the cache in place. A parcel
// already cached is overwritten at its position; an unknown one is appended.
func (s *Store) Replace(p Parcel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.parcels[i] = p
		return
	}
	s.parcels = append(s.parcels, p)
}

// Parcels returns a copy of the cached list.
func (s *Store) Parcels() []Parcel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Parcel, len(s.parcels))
	copy(out, s.parcels)
	return out
}

// Get returns the cached parcel with the given id.
func (s *Store) Get(id string) (Parcel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.parcels[i], true
	}
	return Parcel{}, false
}

// Select marks a parcel as the one currently open in the detail view.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns the currently selected parcel, if any.
func (s *Store) Selected() (Parcel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == "" {
		return Parcel{}, false
	}
	if i := s.indexOf(s.selectedID); i >= 0 {
		return s.parcels[i], true
	}
	return Parcel{}, false
}

// SetHistory replaces the cached transition log of a parcel with what the
// server returned, newest first.
func (s *Store) SetHistory(id string, changes []StatusChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StatusChange, len(changes))
	copy(out, changes)
	s.history[id] = out
}

// History returns a copy of the cached transition log of a parcel. Nil means
// no log has been fetched yet.
func (s *Store) History(id string) []StatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.history[id]
	if !ok {
		return nil
	}
	out := make([]StatusChange, len(cached))
	copy(out, cached)
	return out
}

// Remove drops a parcel and its history from the cache, clearing the
// selection if it pointed at the removed parcel.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.parcels = append(s.parcels[:i], s.parcels[i+1:]...)
	}
	delete(s.history, id)
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i := range s.parcels {
		if s.parcels[i].ID == id {
			return i
		}
	}
	return -1
}
