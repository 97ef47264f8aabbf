package network

// Event names on the wire. Clients send joinRoom; the server sends the
// rest, always addressed to one room's subscribers.
const (
	EventJoinRoom    = "joinRoom"
	EventGameState   = "gameState"
	EventNumberDrawn = "numberDrawn"
	EventGameReset   = "gameReset"
	EventShowLast    = "showLast"
	EventShowAll     = "showAll"
)
