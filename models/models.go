// models/models.go
package models

// RoomState holds the live draw state of a single room.
type RoomState struct {
	CurrentNumber   *int   `json:"currentNumber"`
	DrawnNumbers    []int  `json:"drawnNumbers"`
	IsShowingAll    bool   `json:"isShowingAll"`
	VoicePreference string `json:"voicePreference"`
	LastActivity    int64  `json:"lastActivity"` // epoch millis, refreshed on draw/reset
}

// NewRoomState returns the state a room has before any draw.
func NewRoomState() RoomState {
	return RoomState{
		DrawnNumbers:    []int{},
		VoicePreference: "default",
	}
}

// Clone returns an independent copy so callers can hold the result
// across later mutations.
func (s RoomState) Clone() RoomState {
	out := s
	out.DrawnNumbers = make([]int, len(s.DrawnNumbers))
	copy(out.DrawnNumbers, s.DrawnNumbers)
	if s.CurrentNumber != nil {
		n := *s.CurrentNumber
		out.CurrentNumber = &n
	}
	return out
}

// Contains reports whether n has already been drawn in this room.
func (s RoomState) Contains(n int) bool {
	for _, d := range s.DrawnNumbers {
		if d == n {
			return true
		}
	}
	return false
}

// NumberDrawn is the payload of the numberDrawn event.
type NumberDrawn struct {
	Number       int   `json:"number"`
	DrawnNumbers []int `json:"drawnNumbers"`
}

// ShowLast is the payload of the showLast event.
type ShowLast struct {
	Number       *int  `json:"number"`
	DrawnNumbers []int `json:"drawnNumbers"`
}

// ShowAll is the payload of the showAll event.
type ShowAll struct {
	Numbers []int `json:"numbers"`
}
