package utils

import "github.com/google/uuid"

// GenerateID returns a new record id. All gateway-assigned ids (items,
// messages, users) come from here.
func GenerateID() string {
	return uuid.New().String()
}
