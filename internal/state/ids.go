package state

import (
	"github.com/google/uuid"
)

// NewItemID returns a unique identifier for a text box.
func NewItemID() string {
	return uuid.NewString()
}
