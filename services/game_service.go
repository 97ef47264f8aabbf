// services/game_service.go
package services

import (
	"github.com/wfunc/bingoserver/broadcast"
	"github.com/wfunc/bingoserver/engine"
	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/room"
	"github.com/wfunc/bingoserver/session"
)

// Metrics is the slice of the monitor the service reports into.
type Metrics interface {
	IncDraws()
	IncResets()
}

// GameService runs one operator action end to end: engine transition,
// then event fan-out to the room's subscribers. Both the HTTP gateway
// and the ops RPC surface call through here, so the event sequence per
// mutation is identical no matter where it came from.
type GameService struct {
	engine      *engine.Engine
	broadcaster broadcast.Broadcaster
	metrics     Metrics
}

func NewGameService(eng *engine.Engine, b broadcast.Broadcaster, metrics Metrics) *GameService {
	return &GameService{
		engine:      eng,
		broadcaster: b,
		metrics:     metrics,
	}
}

// Status returns the room's current state without mutating it.
func (s *GameService) Status(roomName string) models.RoomState {
	return s.engine.State(roomName)
}

// Rooms lists the known rooms, for ops tooling.
func (s *GameService) Rooms() []string {
	return s.engine.Rooms()
}

// Draw reveals a number and notifies the room.
func (s *GameService) Draw(roomName string, number int) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.DrawNumber(roomName, number)
	if err != nil {
		return state, err
	}

	s.broadcaster.BroadcastToRoom(roomName, network.EventNumberDrawn, models.NumberDrawn{
		Number:       number,
		DrawnNumbers: state.DrawnNumbers,
	})
	s.broadcastState(roomName, state)
	if s.metrics != nil {
		s.metrics.IncDraws()
	}
	return state, nil
}

// Reset starts a fresh game and notifies the room.
func (s *GameService) Reset(roomName string) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.Reset(roomName)
	if err != nil {
		return state, err
	}

	s.broadcaster.BroadcastToRoom(roomName, network.EventGameReset, struct{}{})
	s.broadcastState(roomName, state)
	if s.metrics != nil {
		s.metrics.IncResets()
	}
	return state, nil
}

// ShowLast switches the room's displays back to the current number.
func (s *GameService) ShowLast(roomName string) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.SetShowLast(roomName)
	if err != nil {
		return state, err
	}

	s.broadcaster.BroadcastToRoom(roomName, network.EventShowLast, models.ShowLast{
		Number:       state.CurrentNumber,
		DrawnNumbers: state.DrawnNumbers,
	})
	s.broadcastState(roomName, state)
	return state, nil
}

// ShowAll switches the room's displays to the full drawn-number table.
func (s *GameService) ShowAll(roomName string) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.SetShowAll(roomName)
	if err != nil {
		return state, err
	}

	s.broadcaster.BroadcastToRoom(roomName, network.EventShowAll, models.ShowAll{
		Numbers: state.DrawnNumbers,
	})
	s.broadcastState(roomName, state)
	return state, nil
}

// ToggleDisplay sets or flips the display mode.
func (s *GameService) ToggleDisplay(roomName, mode string) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.SetDisplayMode(roomName, mode)
	if err != nil {
		return state, err
	}

	s.broadcastState(roomName, state)
	return state, nil
}

// SetVoice stores the room's voice hint.
func (s *GameService) SetVoice(roomName, voice string) (models.RoomState, error) {
	roomName = room.Normalize(roomName)
	state, err := s.engine.SetVoicePreference(roomName, voice)
	if err != nil {
		return state, err
	}

	s.broadcastState(roomName, state)
	return state, nil
}

// Join subscribes the session to a room and hands it the room's current
// state so a fresh display renders immediately.
func (s *GameService) Join(sess *session.Session, roomName string) models.RoomState {
	roomName = room.Normalize(roomName)
	sess.JoinRoom(roomName)

	state := s.engine.State(roomName)
	sess.Send(network.EventGameState, state)
	return state
}

func (s *GameService) broadcastState(roomName string, state models.RoomState) {
	s.broadcaster.BroadcastToRoom(roomName, network.EventGameState, state)
}
