package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reciteapp/recite/internal/models"
)

type jsonFile struct {
	Version     int                              `json:"version"`
	Settings    models.Settings                  `json:"settings"`
	Notes       map[string]models.Note           `json:"notes"`
	Schedules   map[string]models.ReviewSchedule `json:"schedules"`
	History     []models.HistoryItem             `json:"history"`
	CustomOrder []string                         `json:"custom_order"`
}

// JSONStore keeps the whole dataset in a single indented JSON file and
// rewrites it on every mutation. Fine for personal-sized collections.
type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &jsonFile{
		Version:   1,
		Settings:  models.DefaultSettings(),
		Notes:     make(map[string]models.Note),
		Schedules: make(map[string]models.ReviewSchedule),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'recite init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.file.Notes == nil {
		s.file.Notes = make(map[string]models.Note)
	}
	if s.file.Schedules == nil {
		s.file.Schedules = make(map[string]models.ReviewSchedule)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.file == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.file.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Settings = settings
	return s.save()
}

func (s *JSONStore) AddNote(note models.Note) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Notes[note.ID] = note
	return s.save()
}

func (s *JSONStore) GetNote(id string) (models.Note, error) {
	if s.file == nil {
		return models.Note{}, fmt.Errorf("storage not loaded")
	}
	note, ok := s.file.Notes[id]
	if !ok {
		return models.Note{}, fmt.Errorf("note not found: %s", id)
	}
	return note, nil
}

func (s *JSONStore) GetAllNotes() ([]models.Note, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	notes := make([]models.Note, 0, len(s.file.Notes))
	for _, note := range s.file.Notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *JSONStore) DeleteNote(id string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.file.Notes, id)
	return s.save()
}

func (s *JSONStore) SaveSchedule(sched models.ReviewSchedule) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.Schedules[sched.NoteID] = sched
	return s.save()
}

func (s *JSONStore) GetSchedule(noteID string) (models.ReviewSchedule, error) {
	if s.file == nil {
		return models.ReviewSchedule{}, fmt.Errorf("storage not loaded")
	}
	sched, ok := s.file.Schedules[noteID]
	if !ok {
		return models.ReviewSchedule{}, fmt.Errorf("schedule not found: %s", noteID)
	}
	return sched, nil
}

func (s *JSONStore) GetAllSchedules() ([]models.ReviewSchedule, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	scheds := make([]models.ReviewSchedule, 0, len(s.file.Schedules))
	for _, sched := range s.file.Schedules {
		scheds = append(scheds, sched)
	}
	return scheds, nil
}

func (s *JSONStore) DeleteSchedule(noteID string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.file.Schedules, noteID)
	return s.save()
}

func (s *JSONStore) GetHistory() ([]models.HistoryItem, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.file.History, nil
}

func (s *JSONStore) SaveHistory(items []models.HistoryItem) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.History = items
	return s.save()
}

func (s *JSONStore) GetCustomOrder() ([]string, error) {
	if s.file == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.file.CustomOrder, nil
}

func (s *JSONStore) SaveCustomOrder(order []string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.file.CustomOrder = order
	return s.save()
}

func (s *JSONStore) GetStorePath() string {
	return s.path
}
