package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func acceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <object> <event> [ordinal]",
		Short: "Accept a pending binding so it may run",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal := ""
			if len(args) == 3 {
				ordinal = args[2]
			}
			return runAccept(args[0], args[1], ordinal)
		},
	}
	return cmd
}

func runAccept(objectName, eventName, ordinal string) error {
	ctx := context.Background()

	user, err := requireUser()
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close(ctx)

	obj, err := a.object(objectName)
	if err != nil {
		return err
	}

	binding, err := a.svc.Accept(ctx, user, obj, eventName, ordinal)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Accepted event %s %d of %s (author %s).\n",
		binding.EventName, binding.Position+1, obj, binding.Author)
	return nil
}
