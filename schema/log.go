package schema

import "time"

// LogEntry is one log record shipped to the remote log table.
type LogEntry struct {
	Timestamp time.Time
	App       string
	Level     string
	Message   string
}
