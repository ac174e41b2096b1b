package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eventcraft/internal/editor"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <object> <event> [ordinal]",
		Short: "Open the editor on an existing binding",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ordinal := ""
			if len(args) == 3 {
				ordinal = args[2]
			}
			return runEdit(args[0], args[1], ordinal)
		},
	}
	return cmd
}

func runEdit(objectName, eventName, ordinal string) error {
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

	sess, err := a.svc.BeginEdit(ctx, user, obj, eventName, ordinal)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, sess.Description)
	term := &editor.Terminal{In: os.Stdin, Out: os.Stdout}
	return term.Run(ctx, fmt.Sprintf("event %s of %s", sess.EventName, obj), a.svc.EditorHooks(user))
}
