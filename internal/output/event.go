package output

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type EventName string

const (
	EventIndexStarted      EventName = "index_started"
	EventIndexFinished     EventName = "index_finished"
	EventFileUnreadable    EventName = "file_unreadable"
	EventConflictFound     EventName = "conflict_found"
	EventConflictResolved  EventName = "conflict_resolved"
	EventPlanReady         EventName = "plan_ready"
	EventDirFailed         EventName = "dir_failed"
	EventFileSkipped       EventName = "file_skipped"
	EventFileTransferred   EventName = "file_transferred"
	EventFileFailed        EventName = "file_failed"
	EventOrganizeFinished  EventName = "organize_finished"
	EventOrganizeCancelled EventName = "organize_cancelled"
)

type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Event     EventName      `json:"event"`
	Path      string         `json:"path,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
