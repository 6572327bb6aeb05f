package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const workspaceConfigFile = ".ai-reviewer.yml"

// workspaceConfig carries per-directory defaults for the CLI. Flags always
// win over the file.
type workspaceConfig struct {
	Language         string `yaml:"language"`
	Style            string `yaml:"style"`
	ResponseLanguage string `yaml:"responseLanguage"`
	Model            string `yaml:"model"`
}

// loadWorkspaceConfig reads .ai-reviewer.yml from the current directory. A
// missing file is not an error; a malformed one is.
func loadWorkspaceConfig() (*workspaceConfig, error) {
	data, err := os.ReadFile(workspaceConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &workspaceConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", workspaceConfigFile, err)
	}

	var cfg workspaceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", workspaceConfigFile, err)
	}
	return &cfg, nil
}

// resolve returns value when set, else the workspace default.
func resolve(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
