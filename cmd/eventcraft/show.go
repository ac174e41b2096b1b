package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <object> <event> [ordinal]",
		Short: "Print one binding's code",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal := ""
			if len(args) == 3 {
				ordinal = args[2]
			}
			return runShow(args[0], args[1], ordinal)
		},
	}
	return cmd
}

func runShow(objectName, eventName, ordinal string) error {
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

	binding, info, err := a.svc.Show(ctx, user, obj, eventName, ordinal)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Event %s %d of %s", binding.EventName, binding.Position+1, obj)
	if info.Signature != "" {
		fmt.Fprintf(os.Stdout, " (%s)", info.Signature)
	}
	fmt.Fprintf(os.Stdout, ", author %s:\n", binding.Author)
	if binding.Code == "" {
		fmt.Fprintln(os.Stdout, "(no code)")
		return nil
	}
	fmt.Fprintln(os.Stdout, binding.Code)
	return nil
}
