package models

import "time"

// HistoryItem is one completed (or skipped) review. Entries are append-only
// and never mutated, only trimmed when the log exceeds its cap.
type HistoryItem struct {
	ID           string    `json:"id"`
	NoteID       string    `json:"note_id"`
	Timestamp    time.Time `json:"timestamp"`
	Response     int       `json:"response"` // normalized 0–5 quality scale
	IntervalDays int       `json:"interval_days"`
	Ease         int       `json:"ease"` // ×100; zero for FSRS reviews
	Skipped      bool      `json:"skipped"`
}
