package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

// Envelope mirrors the server's wire format.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type gameState struct {
	CurrentNumber   *int   `json:"currentNumber"`
	DrawnNumbers    []int  `json:"drawnNumbers"`
	IsShowingAll    bool   `json:"isShowingAll"`
	VoicePreference string `json:"voicePreference"`
}

// A terminal display: joins a room and prints the caller's events as
// they arrive.
func main() {
	addr := flag.String("addr", "localhost:3000", "server host:port")
	room := flag.String("room", "public", "room to watch")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var env Envelope
			if err := c.ReadJSON(&env); err != nil {
				log.Println("Read error:", err)
				return
			}
			printEvent(env)
		}
	}()

	roomData, _ := json.Marshal(*room)
	if err := c.WriteJSON(Envelope{Event: "joinRoom", Data: roomData}); err != nil {
		log.Fatalf("Failed to join room: %v", err)
	}
	log.Printf("Watching room %q", *room)

	select {
	case <-done:
	case <-interrupt:
		log.Println("Interrupt received, closing connection.")
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("Write close error:", err)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printEvent(env Envelope) {
	switch env.Event {
	case "numberDrawn":
		var payload struct {
			Number       int   `json:"number"`
			DrawnNumbers []int `json:"drawnNumbers"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return
		}
		log.Printf("*** NUMBER DRAWN: %d (total %d) ***", payload.Number, len(payload.DrawnNumbers))
	case "gameReset":
		log.Println("*** GAME RESET ***")
	case "showAll":
		var payload struct {
			Numbers []int `json:"numbers"`
		}
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return
		}
		log.Printf("Showing full table: %v", payload.Numbers)
	case "showLast":
		log.Println("Showing current number only")
	case "gameState":
		var state gameState
		if err := json.Unmarshal(env.Data, &state); err != nil {
			return
		}
		current := "-"
		if state.CurrentNumber != nil {
			current = strconv.Itoa(*state.CurrentNumber)
		}
		log.Printf("State: current=%s drawn=%v showAll=%t voice=%q",
			current, state.DrawnNumbers, state.IsShowingAll, state.VoicePreference)
	default:
		log.Printf("<- %s: %s", env.Event, string(env.Data))
	}
}
