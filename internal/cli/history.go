package cli

import (
	"fmt"
	"time"
)

type HistoryCmd struct {
	Note  string `short:"n" help:"Only entries for this note ID."`
	Limit int    `short:"l" help:"Maximum number of entries, newest last." default:"20"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}

	entries := sched.History()
	if c.Note != "" {
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.NoteID == c.Note {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[len(entries)-c.Limit:]
	}

	if len(entries) == 0 {
		fmt.Println("No review history.")
		return nil
	}

	for _, e := range entries {
		label := "review"
		if e.Skipped {
			label = "skip"
		}
		fmt.Printf("%s  %s  %s  response=%d  interval=%dd",
			e.Timestamp.UTC().Format(time.RFC3339), e.NoteID, label, e.Response, e.IntervalDays)
		if e.Ease > 0 {
			fmt.Printf("  ease=%.2f", float64(e.Ease)/100)
		}
		fmt.Println()
	}
	return nil
}
