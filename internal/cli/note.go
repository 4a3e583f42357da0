package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reciteapp/recite/internal/constants"
	"github.com/reciteapp/recite/internal/models"
)

type NoteAddCmd struct {
	Path  string `arg:"" help:"Path of the note to put under review."`
	Title string `short:"t" help:"Display title; defaults to the file name."`
	ID    string `help:"Explicit note ID; defaults to a generated UUID."`
	Days  int    `short:"d" help:"Schedule the first review this many days out." default:"0"`
}

func (c *NoteAddCmd) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must be zero or positive")
	}
	return nil
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	id := c.ID
	if id == "" {
		id = uuid.New().String()
	}
	title := c.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	}

	note := models.Note{
		ID:        id,
		Path:      c.Path,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := ctx.Store.AddNote(note); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.ScheduleNoteForReview(id, c.Days) {
		return fmt.Errorf("note %s is already scheduled", id)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}

	fmt.Printf("Added note: %s (ID: %s)\n", title, id)
	return nil
}

type NoteRemoveCmd struct {
	ID string `arg:"" help:"Note ID to remove from review."`
}

func (c *NoteRemoveCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.RemoveFromReview(c.ID) {
		return fmt.Errorf("note not scheduled: %s", c.ID)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}
	if err := ctx.Store.DeleteNote(c.ID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Printf("Removed note from review: %s\n", c.ID)
	return nil
}

type NoteListCmd struct{}

func (c *NoteListCmd) Run(ctx *Context) error {
	notes, err := ctx.Store.GetAllNotes()
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		fmt.Println("No notes under review.")
		return nil
	}

	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}

	for _, note := range notes {
		line := fmt.Sprintf("%s  %s", note.ID, note.Title)
		if s, ok := sched.Schedule(note.ID); ok {
			line += fmt.Sprintf("  [%s, next %s]", s.Algorithm, s.NextReviewDate.UTC().Format(constants.DateFormat))
		} else {
			line += "  [unscheduled]"
		}
		fmt.Println(line)
	}
	return nil
}
