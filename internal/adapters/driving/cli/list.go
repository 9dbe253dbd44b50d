package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List study modules and their indexed documents",
	Long: `Lists every study module known to the cloud provider, merged with
the local registry. Modules that exist locally but can no longer be
confirmed remotely are shown from the registry.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if library == nil {
		return errors.New("library service not configured")
	}

	modules, err := library.ListModules(context.Background())
	if err != nil {
		return fmt.Errorf("listing modules: %w", err)
	}

	if len(modules) == 0 {
		cmd.Println("No modules found.")
		return nil
	}

	cmd.Println("Modules:")
	cmd.Println()
	for i := range modules {
		cmd.Printf("  [%d] %s\n", i+1, modules[i].Name)
		cmd.Printf("      Store: %s\n", modules[i].StoreHandle)
		for _, doc := range modules[i].Documents {
			cmd.Printf("      - %s\n", doc)
		}
		cmd.Println()
	}

	return nil
}
