package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"eventcraft/internal/editor"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <object> <event>",
		Short: "Create a new binding and open the editor on it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args[0], args[1])
		},
	}
	return cmd
}

func runAdd(objectName, eventName string) error {
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

	sess, err := a.svc.BeginAdd(ctx, user, obj, eventName)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, sess.Description)
	term := &editor.Terminal{In: os.Stdin, Out: os.Stdout}
	return term.Run(ctx, fmt.Sprintf("event %s of %s", sess.EventName, obj), a.svc.EditorHooks(user))
}
