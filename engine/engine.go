// engine/engine.go
package engine

import (
	"errors"
	"time"

	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/room"
)

// Classic 75-ball bingo range.
const (
	MinNumber = 1
	MaxNumber = 75
)

// Display modes accepted by SetDisplayMode. An empty mode toggles.
const (
	ModeAll     = "all"
	ModeCurrent = "current"
)

var (
	ErrDuplicateDraw = errors.New("number already drawn in this room")
	ErrOutOfRange    = errors.New("number must be between 1 and 75")
	ErrInvalidInput  = errors.New("required field is missing or empty")
)

// Engine applies the game's state transitions. All validation lives
// here; rejections leave the room untouched and callers may retry with
// corrected input immediately. Snapshot writes happen inside the store
// and never affect the outcome of a transition.
type Engine struct {
	store *room.Store
}

func New(store *room.Store) *Engine {
	return &Engine{store: store}
}

// State returns the room's current state, creating the room on first
// reference.
func (e *Engine) State(roomName string) models.RoomState {
	return e.store.Get(roomName)
}

// Rooms lists every room the store knows about.
func (e *Engine) Rooms() []string {
	return e.store.Names()
}

// DrawNumber reveals n in the room. The new number becomes current, the
// display snaps back to the current-number view and the draw history
// grows by one.
func (e *Engine) DrawNumber(roomName string, n int) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		if n < MinNumber || n > MaxNumber {
			return ErrOutOfRange
		}
		if state.Contains(n) {
			return ErrDuplicateDraw
		}
		num := n
		state.CurrentNumber = &num
		state.DrawnNumbers = append(state.DrawnNumbers, n)
		state.IsShowingAll = false
		state.LastActivity = time.Now().UnixMilli()
		return nil
	})
}

// Reset starts a fresh game in the room.
func (e *Engine) Reset(roomName string) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		state.CurrentNumber = nil
		state.DrawnNumbers = []int{}
		state.IsShowingAll = false
		state.LastActivity = time.Now().UnixMilli()
		return nil
	})
}

// SetDisplayMode switches between the full table and the current-number
// view. "all" and "current" set the mode explicitly; an empty mode
// toggles whatever is showing.
func (e *Engine) SetDisplayMode(roomName, mode string) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		switch mode {
		case ModeAll:
			state.IsShowingAll = true
		case ModeCurrent:
			state.IsShowingAll = false
		default:
			state.IsShowingAll = !state.IsShowingAll
		}
		return nil
	})
}

// SetShowAll switches the room to the full drawn-number table.
func (e *Engine) SetShowAll(roomName string) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		state.IsShowingAll = true
		return nil
	})
}

// SetShowLast switches the room back to the current-number view.
func (e *Engine) SetShowLast(roomName string) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		state.IsShowingAll = false
		return nil
	})
}

// SetVoicePreference stores the display-side voice hint verbatim.
func (e *Engine) SetVoicePreference(roomName, voice string) (models.RoomState, error) {
	return e.store.Update(roomName, func(state *models.RoomState) error {
		if voice == "" {
			return ErrInvalidInput
		}
		state.VoicePreference = voice
		return nil
	})
}
