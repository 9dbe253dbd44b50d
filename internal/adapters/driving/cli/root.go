// Package cli implements the shelf command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by main before Execute runs.
var (
	library  driving.Library
	answerer driving.Answerer
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Manage cloud-indexed study modules",
	Long: `Shelf uploads study material into cloud file-search stores,
keeps a local registry of what is indexed, and answers questions
grounded in the uploaded documents.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetLibrary injects the module library service.
func SetLibrary(svc driving.Library) {
	library = svc
}

// SetAnswerer injects the grounded question-answering service.
func SetAnswerer(svc driving.Answerer) {
	answerer = svc
}

// SetVersion overrides the build-time version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
