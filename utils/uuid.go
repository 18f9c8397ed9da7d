package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a fresh UUID string, used as the correlation id
// on jobs flowing through the queue.
func GenerateID() string {
	return uuid.New().String()
}
