package tasks

import (
	"fmt"
	"strings"
	"time"
)

// ID identifies a task while it is live in a Store
type ID int32

// String returns the decimal form of the ID
func (id ID) String() string {
	return fmt.Sprintf("%d", int32(id))
}

// Task represents a single to-do entry
type Task struct {
	ID          ID        `json:"id"`
	Description string    `json:"desc"`
	Completed   bool      `json:"status"`
	Updated     time.Time `json:"updated"`
}

// StatusLabel returns the human label used by listings
func (t Task) StatusLabel() string {
	if t.Completed {
		return "completed task"
	}
	return "pending task"
}

// IsBlank reports whether a description has no visible content
func IsBlank(description string) bool {
	return strings.TrimSpace(description) == ""
}
