package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal"
)

// flagAdder is implemented by controllers that need subcommand-local flags.
type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "unigit",
		Short: "Multi-repository Git synchronization tool",
		Long: `Keep whole directories of Git repositories in sync with one command.

unigit clones and pulls many repositories at once, isolating failures so
one broken checkout never stops the rest, and can summarize the incoming
commits of each pull with a local Ollama model.

Usage modes:
  unigit sync .                        Pull every repository under a directory
  unigit clone <url>                   Clone a single repository
  unigit clone https://github.com/org  Clone every repository of an account
  unigit pull <repo>                   Pull one repository`,
		RunE: func(command *cobra.Command, args []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().Bool("summary", false,
		"Summarize new commits with a local Ollama model")
	cmd.PersistentFlags().Bool("submodules", false,
		"Recurse into submodules on clone and pull")
	cmd.PersistentFlags().IntP("workers", "w", 0,
		"Number of repositories to process in parallel (0 = sequential)")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if adder, ok := ctrl.(flagAdder); ok {
			adder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'unigit': %s", err)
	}
}
