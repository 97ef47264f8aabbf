package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/wfunc/bingoserver/netutil"
	"github.com/wfunc/bingoserver/room"
)

// apiRequest covers every JSON body the API accepts.
type apiRequest struct {
	Room   string `json:"room"`
	Number *int   `json:"number"`
	Voice  string `json:"voice"`
}

// decodeBody tolerates an empty or absent body; several routes only
// carry the room name, and some callers pass it as a query param.
func decodeBody(r *http.Request) apiRequest {
	var req apiRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	return req
}

// roomName resolves the target room: explicit body param, then query
// param, then the default room.
func roomName(r *http.Request, req apiRequest) string {
	if req.Room != "" {
		return req.Room
	}
	if q := r.URL.Query().Get("room"); q != "" {
		return q
	}
	return room.DefaultRoom
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *GameServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	state := s.service.Status(roomName(r, apiRequest{}))
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleDrawNumber(w http.ResponseWriter, r *http.Request) {
	req := decodeBody(r)
	if req.Number == nil {
		writeError(w, http.StatusBadRequest, "number is required")
		return
	}

	state, err := s.service.Draw(roomName(r, req), *req.Number)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleReset(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.Reset(roomName(r, decodeBody(r)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleShowLast(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.ShowLast(roomName(r, decodeBody(r)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleShowAll(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.ShowAll(roomName(r, decodeBody(r)))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleToggleDisplay(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode") // "all" or "current", empty toggles
	state, err := s.service.ToggleDisplay(roomName(r, decodeBody(r)), mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleSetVoice(w http.ResponseWriter, r *http.Request) {
	req := decodeBody(r)
	if req.Voice == "" {
		writeError(w, http.StatusBadRequest, "voice name required")
		return
	}

	state, err := s.service.SetVoice(roomName(r, req), req.Voice)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *GameServer) handleNetworkInfo(w http.ResponseWriter, r *http.Request) {
	ip := netutil.NetworkIP()
	name := room.Normalize(roomName(r, apiRequest{}))

	writeJSON(w, http.StatusOK, map[string]string{
		"ip":         ip,
		"adminUrl":   s.pageURL(ip, "admin.html", name),
		"displayUrl": s.pageURL(ip, "display.html", name),
	})
}

// handleQR serves {url, qrCode} for the admin or display page, the QR
// as a PNG data URL.
func (s *GameServer) handleQR(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := room.Normalize(roomName(r, apiRequest{}))
		url := s.pageURL(netutil.NetworkIP(), page, name)

		png, err := qrcode.Encode(url, qrcode.Medium, 256)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to generate QR code")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"url":    url,
			"qrCode": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		})
	}
}

func (s *GameServer) pageURL(ip, page, roomName string) string {
	port := "80"
	if _, p, err := net.SplitHostPort(s.cfg.HTTPAddress); err == nil && p != "" {
		port = p
	}

	url := fmt.Sprintf("http://%s:%s/%s", ip, port, page)
	if roomName != room.DefaultRoom {
		url += "?room=" + roomName
	}
	return url
}
