package engine

import (
	"errors"
	"testing"

	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/persistence"
	"github.com/wfunc/bingoserver/room"
)

func init() {
	logger.Init()
}

// MemoryBackend is a test double for the persistence.Backend interface.
type MemoryBackend struct {
	saved map[string]models.RoomState
}

func (m *MemoryBackend) Save(rooms map[string]models.RoomState) error {
	m.saved = rooms
	return nil
}

func (m *MemoryBackend) Load() (map[string]models.RoomState, error) {
	return map[string]models.RoomState{}, nil
}

func (m *MemoryBackend) Close() error { return nil }

var _ persistence.Backend = (*MemoryBackend)(nil)

func newTestEngine() *Engine {
	return New(room.NewStore(&MemoryBackend{}))
}

func TestDrawNumber(t *testing.T) {
	eng := newTestEngine()

	state, err := eng.DrawNumber("public", 17)
	if err != nil {
		t.Fatalf("DrawNumber failed: %v", err)
	}
	if state.CurrentNumber == nil || *state.CurrentNumber != 17 {
		t.Error("Expected current number 17")
	}
	if len(state.DrawnNumbers) != 1 || state.DrawnNumbers[0] != 17 {
		t.Errorf("Expected drawn numbers [17], got %v", state.DrawnNumbers)
	}
	if state.IsShowingAll {
		t.Error("A draw must force the current-number view")
	}
	if state.LastActivity == 0 {
		t.Error("A draw must refresh lastActivity")
	}
}

func TestDrawNumber_Duplicate(t *testing.T) {
	eng := newTestEngine()

	if _, err := eng.DrawNumber("public", 17); err != nil {
		t.Fatalf("First draw failed: %v", err)
	}

	state, err := eng.DrawNumber("public", 17)
	if !errors.Is(err, ErrDuplicateDraw) {
		t.Fatalf("Expected ErrDuplicateDraw, got %v", err)
	}
	if len(state.DrawnNumbers) != 1 {
		t.Errorf("A rejected draw must leave state unchanged, got %v", state.DrawnNumbers)
	}
}

func TestDrawNumber_OutOfRange(t *testing.T) {
	eng := newTestEngine()

	for _, n := range []int{0, 76, -5, 100} {
		if _, err := eng.DrawNumber("public", n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("DrawNumber(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}

	// Boundaries are inclusive.
	if _, err := eng.DrawNumber("public", 1); err != nil {
		t.Errorf("DrawNumber(1) should succeed: %v", err)
	}
	if _, err := eng.DrawNumber("public", 75); err != nil {
		t.Errorf("DrawNumber(75) should succeed: %v", err)
	}

	if got := len(eng.State("public").DrawnNumbers); got != 2 {
		t.Errorf("Rejected draws must not land in the history, got %d entries", got)
	}
}

func TestReset(t *testing.T) {
	eng := newTestEngine()

	eng.DrawNumber("public", 3)
	eng.DrawNumber("public", 11)
	eng.SetShowAll("public")

	state, err := eng.Reset("public")
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.CurrentNumber != nil {
		t.Error("Reset must clear the current number")
	}
	if len(state.DrawnNumbers) != 0 {
		t.Errorf("Reset must empty the history, got %v", state.DrawnNumbers)
	}
	if state.IsShowingAll {
		t.Error("Reset must force the current-number view")
	}
}

func TestSetDisplayMode(t *testing.T) {
	eng := newTestEngine()

	state, _ := eng.SetDisplayMode("public", ModeAll)
	if !state.IsShowingAll {
		t.Error(`SetDisplayMode("all") should show the table`)
	}

	state, _ = eng.SetDisplayMode("public", ModeCurrent)
	if state.IsShowingAll {
		t.Error(`SetDisplayMode("current") should show the current number`)
	}

	// Empty mode toggles.
	state, _ = eng.SetDisplayMode("public", "")
	if !state.IsShowingAll {
		t.Error("Empty mode should toggle to showing all")
	}
	state, _ = eng.SetDisplayMode("public", "")
	if state.IsShowingAll {
		t.Error("Empty mode should toggle back")
	}
}

func TestDrawForcesCurrentView(t *testing.T) {
	eng := newTestEngine()

	eng.DrawNumber("public", 17)
	state, _ := eng.SetDisplayMode("public", ModeAll)
	if !state.IsShowingAll {
		t.Fatal("Setup failed: expected showing all")
	}

	state, err := eng.DrawNumber("public", 42)
	if err != nil {
		t.Fatalf("DrawNumber failed: %v", err)
	}
	if state.IsShowingAll {
		t.Error("A draw must snap displays back to the current number")
	}
	if *state.CurrentNumber != 42 {
		t.Errorf("Expected current number 42, got %d", *state.CurrentNumber)
	}
	if len(state.DrawnNumbers) != 2 || state.DrawnNumbers[0] != 17 || state.DrawnNumbers[1] != 42 {
		t.Errorf("Expected drawn numbers [17 42], got %v", state.DrawnNumbers)
	}
}

func TestSetShowLastAndShowAll(t *testing.T) {
	eng := newTestEngine()

	state, _ := eng.SetShowAll("public")
	if !state.IsShowingAll {
		t.Error("SetShowAll should show the table")
	}

	state, _ = eng.SetShowLast("public")
	if state.IsShowingAll {
		t.Error("SetShowLast should show the current number")
	}
}

func TestSetVoicePreference(t *testing.T) {
	eng := newTestEngine()

	state, err := eng.SetVoicePreference("public", "Google UK English Female")
	if err != nil {
		t.Fatalf("SetVoicePreference failed: %v", err)
	}
	if state.VoicePreference != "Google UK English Female" {
		t.Errorf("Voice should be stored verbatim, got %q", state.VoicePreference)
	}

	if _, err := eng.SetVoicePreference("public", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Empty voice should be rejected with ErrInvalidInput, got %v", err)
	}
	if got := eng.State("public").VoicePreference; got != "Google UK English Female" {
		t.Errorf("Rejected voice update must not mutate state, got %q", got)
	}
}

func TestCurrentNumberIsLastDrawn(t *testing.T) {
	eng := newTestEngine()

	for _, n := range []int{4, 19, 66, 2} {
		state, err := eng.DrawNumber("teamA", n)
		if err != nil {
			t.Fatalf("DrawNumber(%d) failed: %v", n, err)
		}
		last := state.DrawnNumbers[len(state.DrawnNumbers)-1]
		if *state.CurrentNumber != last {
			t.Errorf("Current number %d should equal last drawn %d", *state.CurrentNumber, last)
		}
	}
}

func TestRoomsAreIndependent(t *testing.T) {
	eng := newTestEngine()

	eng.DrawNumber("teamA", 17)
	// The same number is free in another room.
	if _, err := eng.DrawNumber("teamB", 17); err != nil {
		t.Errorf("Rooms must have independent draw histories: %v", err)
	}
}
