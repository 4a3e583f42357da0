package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reciteapp/recite/internal/models"
	"github.com/reciteapp/recite/internal/review"
	"github.com/reciteapp/recite/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// LoadScheduler builds a review scheduler from the persisted state. Settings
// are read through a closure so a save during the same process is picked up
// by the next operation.
func (c *Context) LoadScheduler() (*review.Scheduler, error) {
	sched := review.New(review.Config{
		Settings: review.SettingsFunc(func() models.Settings {
			settings, err := c.Store.GetSettings()
			if err != nil {
				return models.DefaultSettings()
			}
			models.ApplyDefaultSettings(&settings)
			return settings
		}),
		NoteExists: func(id string) bool {
			_, err := c.Store.GetNote(id)
			return err == nil
		},
	})

	schedules, err := c.Store.GetAllSchedules()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	history, err := c.Store.GetHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	order, err := c.Store.GetCustomOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to load custom order: %w", err)
	}

	sched.Restore(schedules, history, order)
	return sched, nil
}

// SaveScheduler writes the scheduler's state back to storage, removing
// persisted schedules the scheduler no longer tracks.
func (c *Context) SaveScheduler(sched *review.Scheduler) error {
	current := sched.Schedules()
	keep := make(map[string]bool, len(current))
	for _, s := range current {
		keep[s.NoteID] = true
		if err := c.Store.SaveSchedule(s); err != nil {
			return fmt.Errorf("failed to save schedule for %s: %w", s.NoteID, err)
		}
	}

	stored, err := c.Store.GetAllSchedules()
	if err != nil {
		return fmt.Errorf("failed to list schedules: %w", err)
	}
	for _, s := range stored {
		if !keep[s.NoteID] {
			if err := c.Store.DeleteSchedule(s.NoteID); err != nil {
				return fmt.Errorf("failed to delete schedule for %s: %w", s.NoteID, err)
			}
		}
	}

	if err := c.Store.SaveHistory(sched.History()); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	if err := c.Store.SaveCustomOrder(sched.CustomOrder()); err != nil {
		return fmt.Errorf("failed to save custom order: %w", err)
	}
	return nil
}

// ParseIntList parses a comma-separated list of non-negative integers.
func ParseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid interval: %s", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

// ParseFloatList parses a comma-separated list of floats.
func ParseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight: %s", part)
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
