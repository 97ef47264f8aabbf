// broadcast/broadcast.go
package broadcast

import (
	"github.com/wfunc/bingoserver/session"
)

// Broadcaster fans events out to a room's subscriber group.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event string, payload interface{}) error
}

// RoomBroadcaster delivers over the live sessions in the manager.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

// BroadcastToRoom sends the event to every session subscribed to the
// room. A failed send skips that subscriber; the read loop notices the
// broken connection and removes it.
func (b *RoomBroadcaster) BroadcastToRoom(roomID string, event string, payload interface{}) error {
	sessions := b.sessionManager.GetByRoom(roomID)

	for _, s := range sessions {
		if err := s.Send(event, payload); err != nil {
			continue
		}
	}
	return nil
}
