package room

import "regexp"

// DefaultRoom receives every request that names no room, or an invalid one.
const DefaultRoom = "public"

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// ValidName reports whether name is usable as a room identifier:
// 1-50 characters from [A-Za-z0-9_-], case-sensitive.
func ValidName(name string) bool {
	return validName.MatchString(name)
}

// Normalize maps any input to a usable room name. Invalid input does not
// get sanitized into a near-miss room; it resolves to the default room.
func Normalize(name string) string {
	if ValidName(name) {
		return name
	}
	return DefaultRoom
}
