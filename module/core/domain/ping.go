package domain

import "time"

type Ping struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Message    string
	Origin     Coordinate
	Timestamp  time.Time
	Active     bool
}

// ActivePing is a ping joined with its sender's username for display.
type ActivePing struct {
	ID        int64      `json:"id"`
	Sender    string     `json:"sender"`
	Message   string     `json:"message"`
	Origin    Coordinate `json:"origin"`
	Timestamp time.Time  `json:"timestamp"`
}

type LogLevel string

const (
	LogInfo    LogLevel = "INFO"
	LogSuccess LogLevel = "SUCCESS"
	LogAlert   LogLevel = "ALERT"
)

// NotificationLog entries with a nil UserID are global.
type NotificationLog struct {
	ID        int64     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	UserID    *int64    `json:"-"`
}
