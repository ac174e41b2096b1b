package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List bindings awaiting validation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPending()
		},
	}
}

func runPending() error {
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

	rows, err := a.svc.Pending(ctx, user)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing awaiting validation.")
		return nil
	}

	for _, row := range rows {
		fmt.Fprintf(os.Stdout, "  %-10s %-20s %3d  %-16s %s\n",
			row.Object, row.EventName, row.Ordinal, row.Author, row.Updated)
	}
	return nil
}
