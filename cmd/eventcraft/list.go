package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <object> [event]",
		Short: "List event types on an object, or the bindings of one event",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return runListBindings(args[0], args[1])
			}
			return runListTypes(args[0])
		},
	}
	return cmd
}

func runListTypes(objectName string) error {
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

	rows, err := a.svc.Overview(ctx, user, obj)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Events of %s:\n", obj)
	for _, row := range rows {
		name := row.Name
		if row.Orphaned {
			name += " (orphaned)"
		}
		fmt.Fprintf(os.Stdout, "  %-20s %3d bindings %4d lines  %s\n", name, row.Count, row.Lines, row.Description)
	}
	return nil
}

func runListBindings(objectName, eventName string) error {
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

	list, err := a.svc.ListBindings(ctx, user, obj, eventName)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Event %s of %s:\n", eventName, obj)
	for _, row := range list.Rows {
		line := fmt.Sprintf("  %3d  %-16s %s", row.Ordinal, row.Author, row.Updated)
		if list.ShowValidity {
			valid := "no"
			if row.Valid {
				valid = "yes"
			}
			line += "  valid: " + valid
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
