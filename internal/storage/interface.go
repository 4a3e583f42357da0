package storage

import "github.com/reciteapp/recite/internal/models"

// Provider persists the engine's state: registered notes, the schedule map,
// the bounded review history, the custom review order, and settings. The
// scheduling engine itself never touches a Provider; controllers load state,
// run the engine, and save what changed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Notes
	AddNote(models.Note) error
	GetNote(id string) (models.Note, error)
	GetAllNotes() ([]models.Note, error)
	DeleteNote(id string) error

	// Schedules
	SaveSchedule(models.ReviewSchedule) error
	GetSchedule(noteID string) (models.ReviewSchedule, error)
	GetAllSchedules() ([]models.ReviewSchedule, error)
	DeleteSchedule(noteID string) error

	// History (bounded; callers save the already-trimmed log)
	GetHistory() ([]models.HistoryItem, error)
	SaveHistory([]models.HistoryItem) error

	// Custom review order
	GetCustomOrder() ([]string, error)
	SaveCustomOrder([]string) error

	// Utils
	GetStorePath() string
}
