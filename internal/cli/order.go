package cli

import "fmt"

type OrderCmd struct {
	IDs []string `arg:"" optional:"" help:"Note IDs in the desired review order; omit to show the current order."`
}

func (c *OrderCmd) Run(ctx *Context) error {
	sched, err := ctx.LoadScheduler()
	if err != nil {
		return err
	}

	if len(c.IDs) == 0 {
		order := sched.CustomOrder()
		if len(order) == 0 {
			fmt.Println("No custom order set.")
			return nil
		}
		for i, id := range order {
			fmt.Printf("%d. %s\n", i+1, id)
		}
		return nil
	}

	sched.UpdateCustomNoteOrder(c.IDs)
	if err := ctx.SaveScheduler(sched); err != nil {
		return err
	}
	fmt.Printf("Custom order updated (%d notes).\n", len(c.IDs))
	return nil
}
