package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var actingUser string

func main() {
	root := &cobra.Command{
		Use:   "eventcraft",
		Short: "Authoring and moderation of scripted events on game objects",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&actingUser, "as", "", "Acting user name")
	root.AddCommand(listCmd())
	root.AddCommand(showCmd())
	root.AddCommand(addCmd())
	root.AddCommand(editCmd())
	root.AddCommand(delCmd())
	root.AddCommand(pendingCmd())
	root.AddCommand(acceptCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func requireUser() (string, error) {
	if actingUser == "" {
		return "", fmt.Errorf("--as is required")
	}
	return actingUser, nil
}
