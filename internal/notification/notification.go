package notification

import (
	"context"
	"time"
)

// Event represents the outcome of one backup job
type Event struct {
	Type          EventType
	ContainerName string
	Kind          string // artifact kind: "mysql", "django", "volume"
	Artifact      string // artifact filename, empty when the job failed early
	Size          int64
	Duration      time.Duration
	Error         error
	Timestamp     time.Time
}

// EventType represents the type of backup event
type EventType string

const (
	EventBackupCompleted EventType = "backup_completed"
	EventBackupFailed    EventType = "backup_failed"
)

// Notifier defines the interface for notification providers
type Notifier interface {
	// Name returns the notifier instance name
	Name() string

	// Type returns the notifier type (e.g., "telegram", "discord")
	Type() string

	// Send sends a notification for the given event
	Send(ctx context.Context, event Event) error
}

// NotifierType creates Notifier instances from configuration
type NotifierType interface {
	// Name returns the type identifier ("telegram", "discord", etc.)
	Name() string

	// Create instantiates a notifier from configuration options
	Create(name string, options map[string]string) (Notifier, error)
}
