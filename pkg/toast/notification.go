package toast

import "time"

// Kind is the notification severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k == KindSuccess || k == KindError
}

// Notification is a single toast.
type Notification struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EventType describes a change to the active set.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
	EventExpired   EventType = "expired"
)

// Event is published whenever a notification enters or leaves the active set.
type Event struct {
	Type         EventType
	Notification Notification
}
