// room/room.go
package room

import (
	"sync"
	"time"

	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/persistence"
)

// Store owns the room-name -> state mapping and is its single writer.
// Every mutation funnels through Update, which serializes the check,
// the mutation and the snapshot write; collaborators only ever see
// copies of the state.
type Store struct {
	mu      sync.Mutex
	rooms   map[string]*models.RoomState
	backend persistence.Backend
}

func NewStore(backend persistence.Backend) *Store {
	return &Store{
		rooms:   make(map[string]*models.RoomState),
		backend: backend,
	}
}

// Restore loads the snapshot from the backend. A missing or malformed
// snapshot means starting empty; it is logged, never fatal.
func (s *Store) Restore() {
	rooms, err := s.backend.Load()
	if err != nil {
		logger.Log.Errorf("Failed to load snapshot, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, state := range rooms {
		st := state.Clone()
		if st.DrawnNumbers == nil {
			st.DrawnNumbers = []int{}
		}
		s.rooms[name] = &st
	}
	if len(rooms) > 0 {
		logger.Log.Infof("Restored %d room(s) from snapshot", len(rooms))
	}
}

// resolve returns the state for name, creating it with defaults on
// first reference. Caller must hold s.mu.
func (s *Store) resolve(name string) *models.RoomState {
	name = Normalize(name)
	state, exists := s.rooms[name]
	if !exists {
		st := models.NewRoomState()
		st.LastActivity = time.Now().UnixMilli()
		state = &st
		s.rooms[name] = state
	}
	return state
}

// Get returns a copy of the room's state, creating the room if this is
// its first reference.
func (s *Store) Get(name string) models.RoomState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(name).Clone()
}

// Update applies fn to the room's state and snapshots the whole mapping.
// If fn returns an error nothing is mutated and nothing is written. A
// failed snapshot write is logged and does not undo the mutation; memory
// stays authoritative for the live game.
func (s *Store) Update(name string, fn func(*models.RoomState) error) (models.RoomState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.resolve(name)
	scratch := state.Clone()
	if err := fn(&scratch); err != nil {
		return state.Clone(), err
	}
	*state = scratch

	if err := s.persistLocked(); err != nil {
		logger.Log.Errorf("Failed to persist snapshot after update to room %q: %v", Normalize(name), err)
	}
	return state.Clone(), nil
}

// Persist writes the current snapshot. Used for the periodic safety
// snapshot and the final write at shutdown.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	rooms := make(map[string]models.RoomState, len(s.rooms))
	for name, state := range s.rooms {
		rooms[name] = state.Clone()
	}
	return s.backend.Save(rooms)
}

// Names returns the known room names.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	return names
}

// Len returns the number of rooms.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
