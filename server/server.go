package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/bingoserver/config"
	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/monitor"
	"github.com/wfunc/bingoserver/network"
	"github.com/wfunc/bingoserver/services"
	"github.com/wfunc/bingoserver/session"
)

// GameServer is the HTTP gateway: the REST API the admin page calls,
// the websocket endpoint the displays subscribe on, and the static
// files for both.
type GameServer struct {
	cfg            config.ServerConfig
	admin          config.AdminConfig
	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	service        *services.GameService
	monitor        *monitor.Monitor
	shutdownChan   chan struct{}
}

func NewGameServer(cfg config.ServerConfig, admin config.AdminConfig, service *services.GameService, sessionManager *session.Manager, mon *monitor.Monitor) *GameServer {
	return &GameServer{
		cfg:            cfg,
		admin:          admin,
		sessionManager: sessionManager,
		service:        service,
		monitor:        mon,
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // displays load from LAN addresses, allow any origin
			},
		},
	}
}

// Start blocks serving HTTP until the listener fails.
func (s *GameServer) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/network-info", s.handleNetworkInfo)
	mux.HandleFunc("GET /api/qr/admin", s.handleQR("admin.html"))
	mux.HandleFunc("GET /api/qr/display", s.handleQR("display.html"))

	mux.HandleFunc("POST /api/draw-number", s.requireAdmin(s.handleDrawNumber))
	mux.HandleFunc("POST /api/reset", s.requireAdmin(s.handleReset))
	mux.HandleFunc("POST /api/show-last", s.requireAdmin(s.handleShowLast))
	mux.HandleFunc("POST /api/show-all", s.requireAdmin(s.handleShowAll))

	toggle, setVoice := s.handleToggleDisplay, s.handleSetVoice
	if !s.cfg.OpenDisplayControls {
		toggle, setVoice = s.requireAdmin(toggle), s.requireAdmin(setVoice)
	}
	mux.HandleFunc("POST /api/toggle-display", toggle)
	mux.HandleFunc("POST /api/set-voice", setVoice)

	mux.HandleFunc("GET /ws", s.handleWebSocket)

	static := http.FileServer(http.Dir(s.cfg.StaticDir))
	mux.Handle("/admin.html", s.requireAdmin(static.ServeHTTP))
	mux.Handle("/", static)

	logger.Log.Infof("Bingo server listening on %s", s.cfg.HTTPAddress)
	return http.ListenAndServe(s.cfg.HTTPAddress, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
}

// requireAdmin gates a handler behind the shared admin credential.
func (s *GameServer) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.admin.Password)) == 1
		if !ok || !userOK || !passOK {
			w.Header().Set("WWW-Authenticate", `Basic realm="BingoAdmin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncSubscribers()

	logger.Log.Infof("New subscriber from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Subscriber disconnected from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecSubscribers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := wsConn.ReadEvent()
			if err != nil {
				return
			}
			s.handleEvent(sess, env)
		}
	}
}

func (s *GameServer) handleEvent(sess *session.Session, env *network.Envelope) {
	s.monitor.IncMessagesReceived()

	switch env.Event {
	case network.EventJoinRoom:
		roomName := decodeRoomName(env.Data)
		state := s.service.Join(sess, roomName)
		logger.Log.Infof("Session %s joined room %q (%d numbers drawn)", sess.GetID(), sess.RoomID(), len(state.DrawnNumbers))
	default:
		logger.Log.Infof("Unknown event from session %s: %q", sess.GetID(), env.Event)
	}
}

// decodeRoomName accepts both a bare JSON string and {"room": "..."}.
func decodeRoomName(data json.RawMessage) string {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return name
	}
	var req struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &req); err == nil {
		return req.Room
	}
	return ""
}
