package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const starterRegistry = `version: 1
classes:
  - name: room
    events:
      - name: enter
        signature: "character, room"
        description: |
          Fired when a character enters the room.
      - name: leave
        signature: "character, room"
        description: |
          Fired when a character leaves the room.
  - name: exit
    events:
      - name: traverse
        signature: "character, origin, destination"
        description: |
          Fired when a character traverses the exit.
          The handler may block the move.
  - name: door
    events:
      - name: open
        signature: "character, door"
        description: |
          Fired when the door is opened.
      - name: close
        signature: "character, door"
        description: |
          Fired when the door is closed.
`

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new eventcraft project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	registryPath := "events.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(registryPath); err == nil {
		return fmt.Errorf("%s already exists", registryPath)
	}

	configContents := fmt.Sprintf(`project: %s
version: 1

database:
  dsn: sqlite://eventcraft.db

registry: %s

permissions:
  build: ["*"]
  bypass_validation: [admin]
  validate: [admin]

objects:
  - id: "#1"
    class: room
    name: limbo
  - id: "#2"
    class: door
    name: door
`, projectName, registryPath)

	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(registryPath, []byte(starterRegistry), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", registryPath, err)
	}
	return nil
}
