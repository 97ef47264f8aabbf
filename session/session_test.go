package session

import (
	"net"
	"testing"

	"github.com/wfunc/bingoserver/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []string
}

func (m *MockConnection) Send(event string, payload interface{}) error {
	m.sent = append(m.sent, event)
	return nil
}
func (m *MockConnection) ReadEvent() (*network.Envelope, error) { return nil, nil }
func (m *MockConnection) Close() error                          { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                  { return &net.TCPAddr{} }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	manager.Add(sess)
	if manager.Len() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Len())
	}

	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove(sessionID)
	if manager.Len() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Len())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.JoinRoom("public")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.JoinRoom("teamA")

	sess3 := NewSession("session3", &MockConnection{})
	sess3.JoinRoom("public")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	publicSessions := manager.GetByRoom("public")
	if len(publicSessions) != 2 {
		t.Errorf("Expected 2 sessions in public, got %d", len(publicSessions))
	}

	teamASessions := manager.GetByRoom("teamA")
	if len(teamASessions) != 1 {
		t.Errorf("Expected 1 session in teamA, got %d", len(teamASessions))
	}

	if len(manager.GetByRoom("empty")) != 0 {
		t.Error("Expected no sessions in an unjoined room")
	}
}

func TestSession_JoinRoomMovesSubscription(t *testing.T) {
	manager := NewManager()
	sess := NewSession("session1", &MockConnection{})
	manager.Add(sess)

	sess.JoinRoom("public")
	if len(manager.GetByRoom("public")) != 1 {
		t.Fatal("Session should be subscribed to public")
	}

	sess.JoinRoom("teamA")
	if len(manager.GetByRoom("public")) != 0 {
		t.Error("Joining another room should leave the previous group")
	}
	if len(manager.GetByRoom("teamA")) != 1 {
		t.Error("Session should be subscribed to teamA")
	}
}
