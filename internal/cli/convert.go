package cli

import "fmt"

type ConvertCmd struct {
	Direction string `arg:"" enum:"sm2-to-fsrs,fsrs-to-sm2" help:"Conversion direction (sm2-to-fsrs or fsrs-to-sm2)."`
}

func (c *ConvertCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}

	var count int
	switch c.Direction {
	case "sm2-to-fsrs":
		count = sched.ConvertAllSm2ToFsrs()
	case "fsrs-to-sm2":
		count = sched.ConvertAllFsrsToSm2()
	}

	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}
	fmt.Printf("Converted %d schedule(s).\n", count)
	return nil
}
