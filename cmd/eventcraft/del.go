package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func delCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "del <object> <event> [ordinal]",
		Short: "Delete a binding; later ordinals shift down",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal := ""
			if len(args) == 3 {
				ordinal = args[2]
			}
			return runDel(args[0], args[1], ordinal)
		},
	}
	return cmd
}

func runDel(objectName, eventName, ordinal string) error {
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

	if err := a.svc.Delete(ctx, user, obj, eventName, ordinal); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted event %s of %s.\n", eventName, obj)
	return nil
}
