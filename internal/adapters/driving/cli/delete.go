package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [store-handle]",
	Short: "Delete a study module",
	Long: `Deletes the cloud store behind a module, then removes it from the
local registry. Use 'shelf list' to find the store handle.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if library == nil {
		return errors.New("library service not configured")
	}

	handle := args[0]
	if err := library.DeleteModule(context.Background(), handle); err != nil {
		return fmt.Errorf("deleting module: %w", err)
	}

	cmd.Printf("Deleted module: %s\n", handle)
	return nil
}
