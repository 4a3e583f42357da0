package cli

import (
	"fmt"
	"time"

	"github.com/reciteapp/recite/internal/constants"
	"github.com/reciteapp/recite/internal/models"
)

type DueCmd struct {
	Date        string `help:"Day to query (YYYY-MM-DD); defaults to today."`
	Exact       bool   `help:"Only notes due exactly on the given day, not overdue ones."`
	CustomOrder bool   `help:"Apply the saved custom review order."`
}

func (c *DueCmd) Run(ctx *Context) error {
	moment := time.Now().UTC()
	if c.Date != "" {
		t, err := time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", c.Date)
		}
		moment = t
	}

	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}

	due := sched.DueNotes(moment, c.CustomOrder, c.Exact)
	if len(due) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}

	for _, s := range due {
		line := fmt.Sprintf("%s  [%s]  due %s", s.NoteID, s.Algorithm, s.NextReviewDate.UTC().Format(constants.DateFormat))
		if s.Algorithm == models.AlgorithmFSRS {
			line += fmt.Sprintf("  retrievability %.2f", sched.Retrievability(s.NoteID, moment))
		}
		fmt.Println(line)
	}
	fmt.Printf("%d note(s) due.\n", len(due))
	return nil
}
