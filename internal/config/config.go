package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project     string            `yaml:"project"`
	Version     int               `yaml:"version"`
	Database    DatabaseConfig    `yaml:"database"`
	Registry    string            `yaml:"registry"`
	Permissions PermissionsConfig `yaml:"permissions"`
	Objects     []ObjectEntry     `yaml:"objects"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// PermissionsConfig lists, per tier, the users holding it. A single "*"
// entry grants the tier to everyone.
type PermissionsConfig struct {
	Build            []string `yaml:"build"`
	BypassValidation []string `yaml:"bypass_validation"`
	Validate         []string `yaml:"validate"`
}

// ObjectEntry is one resolvable game object. In a full game server this
// roster comes from the world database; the command surface resolves
// targets against it by name or id.
type ObjectEntry struct {
	ID    string `yaml:"id"`
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if strings.TrimSpace(cfg.Registry) == "" {
		return fmt.Errorf("registry path is required")
	}

	seen := make(map[string]struct{})
	for i, obj := range cfg.Objects {
		if strings.TrimSpace(obj.ID) == "" {
			return fmt.Errorf("object %d id is required", i)
		}
		if strings.TrimSpace(obj.Class) == "" {
			return fmt.Errorf("object %d class is required", i)
		}
		key := strings.ToLower(obj.ID)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate object id: %s", obj.ID)
		}
		seen[key] = struct{}{}
	}

	return nil
}
