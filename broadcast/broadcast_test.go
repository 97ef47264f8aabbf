package broadcast

import (
	"errors"
	"net"
	"testing"

	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/session"
)

// MockConnection records every event it is asked to send.
type MockConnection struct {
	sent    []string
	sendErr error
}

func (m *MockConnection) Send(event string, payload interface{}) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, event)
	return nil
}
func (m *MockConnection) ReadEvent() (*network.Envelope, error) { return nil, nil }
func (m *MockConnection) Close() error                          { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                  { return &net.TCPAddr{} }

func joinedSession(manager *session.Manager, id, room string, conn *MockConnection) *session.Session {
	sess := session.NewSession(id, conn)
	sess.JoinRoom(room)
	manager.Add(sess)
	return sess
}

func TestBroadcastToRoom_OnlyReachesSubscribers(t *testing.T) {
	manager := session.NewManager()
	publicConn := &MockConnection{}
	teamAConn := &MockConnection{}
	joinedSession(manager, "s1", "public", publicConn)
	joinedSession(manager, "s2", "teamA", teamAConn)

	b := NewRoomBroadcaster(manager)
	if err := b.BroadcastToRoom("public", network.EventNumberDrawn, nil); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if len(publicConn.sent) != 1 || publicConn.sent[0] != network.EventNumberDrawn {
		t.Errorf("Public subscriber should receive the event, got %v", publicConn.sent)
	}
	if len(teamAConn.sent) != 0 {
		t.Errorf("teamA subscriber must not receive public events, got %v", teamAConn.sent)
	}
}

func TestBroadcastToRoom_SkipsFailingSubscriber(t *testing.T) {
	manager := session.NewManager()
	broken := &MockConnection{sendErr: errors.New("connection gone")}
	healthy := &MockConnection{}
	joinedSession(manager, "s1", "public", broken)
	joinedSession(manager, "s2", "public", healthy)

	b := NewRoomBroadcaster(manager)
	if err := b.BroadcastToRoom("public", network.EventGameReset, nil); err != nil {
		t.Fatalf("A failing subscriber must not fail the broadcast: %v", err)
	}

	if len(healthy.sent) != 1 {
		t.Errorf("Healthy subscriber should still receive the event, got %v", healthy.sent)
	}
}

func TestBroadcastToRoom_EmptyRoom(t *testing.T) {
	b := NewRoomBroadcaster(session.NewManager())
	if err := b.BroadcastToRoom("nobody", network.EventGameState, nil); err != nil {
		t.Errorf("Broadcasting to an empty room should be a no-op, got %v", err)
	}
}
