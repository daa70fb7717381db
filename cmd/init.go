package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seqforge/trimwrap/pkg/config"
)

// RunInit generates a default config file in the working directory.
func RunInit(flagMap map[string]any) error {
	force, _ := flagMap["force"].(bool)

	configPath := filepath.Join(".", config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file %s already exists; use -force to overwrite", configPath)
	}

	return config.Generate(config.NewDefault(), ".")
}
