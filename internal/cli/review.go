package cli

import (
	"fmt"
	"time"

	"github.com/reciteapp/recite/internal/constants"
)

type ReviewCmd struct {
	ID       string `arg:"" help:"Note ID being reviewed."`
	Response int    `short:"r" help:"Review quality, 0 (blackout) through 5 (perfect)." required:""`
	At       string `help:"Review moment (YYYY-MM-DD); defaults to now."`
}

func (c *ReviewCmd) Validate() error {
	if c.Response < 0 || c.Response > 5 {
		return fmt.Errorf("response must be between 0 and 5")
	}
	return nil
}

func (c *ReviewCmd) Run(ctx *Context) error {
	moment := time.Time{}
	if c.At != "" {
		t, err := time.Parse(constants.DateFormat, c.At)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", c.At)
		}
		moment = t
	}

	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.RecordReview(c.ID, c.Response, moment) {
		return fmt.Errorf("note %s is not due (or not scheduled)", c.ID)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}

	s, _ := sched.Schedule(c.ID)
	fmt.Printf("Reviewed %s; next review %s\n", c.ID, s.NextReviewDate.UTC().Format(constants.DateFormat))
	return nil
}

type SkipCmd struct {
	ID       string `arg:"" help:"Note ID to skip."`
	Response int    `short:"r" help:"Quality to record for the skip." default:"3"`
}

func (c *SkipCmd) Validate() error {
	if c.Response < 0 || c.Response > 5 {
		return fmt.Errorf("response must be between 0 and 5")
	}
	return nil
}

func (c *SkipCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.SkipNote(c.ID, c.Response, time.Time{}) {
		return fmt.Errorf("note not scheduled: %s", c.ID)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}

	s, _ := sched.Schedule(c.ID)
	fmt.Printf("Skipped %s; next review %s\n", c.ID, s.NextReviewDate.UTC().Format(constants.DateFormat))
	return nil
}

type PostponeCmd struct {
	ID   string `arg:"" help:"Note ID to postpone."`
	Days int    `short:"d" help:"Days to push the next review out." default:"1"`
}

func (c *PostponeCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.PostponeNote(c.ID, c.Days) {
		return fmt.Errorf("note not scheduled: %s", c.ID)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}

	s, _ := sched.Schedule(c.ID)
	fmt.Printf("Postponed %s; next review %s\n", c.ID, s.NextReviewDate.UTC().Format(constants.DateFormat))
	return nil
}

type AdvanceCmd struct {
	ID string `arg:"" help:"Note ID to pull one day closer."`
}

func (c *AdvanceCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}
	if !sched.AdvanceNote(c.ID) {
		return fmt.Errorf("cannot advance %s: already due today or not scheduled", c.ID)
	}
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}

	s, _ := sched.Schedule(c.ID)
	fmt.Printf("Advanced %s; next review %s\n", c.ID, s.NextReviewDate.UTC().Format(constants.DateFormat))
	return nil
}
