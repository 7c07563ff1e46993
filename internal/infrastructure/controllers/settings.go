package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// loadSettings builds the run settings from the config file (explicit
// --config, or the first default location found, or the built-in
// defaults) and applies the CLI flag overrides.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}

	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		settings.DryRun = true
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if summary, changed := flagBool(cmd, "summary"); changed {
		settings.EnableSummary = summary
	}
	if submodules, changed := flagBool(cmd, "submodules"); changed {
		settings.Submodules = submodules
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		settings.Workers = workers
	}

	return settings, nil
}

func flagBool(cmd *cobra.Command, name string) (value, changed bool) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return false, false
	}
	v, _ := cmd.Flags().GetBool(name)
	return v, true
}
