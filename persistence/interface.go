// persistence/interface.go
package persistence

import (
	"github.com/wfunc/bingoserver/models"
)

// Backend stores the full room-state snapshot. Implementations must
// round-trip exactly: loading a just-saved snapshot reproduces every
// room unchanged.
type Backend interface {
	Save(rooms map[string]models.RoomState) error
	Load() (map[string]models.RoomState, error)
	Close() error
}
