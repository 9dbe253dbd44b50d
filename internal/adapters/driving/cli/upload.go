package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [module-name] [files...]",
	Short: "Upload files into a new study module",
	Long: `Creates a cloud store named after the module and uploads the given
files into it one at a time, waiting for each file to finish indexing.
A file that fails does not stop the rest of the batch.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if library == nil {
		return errors.New("library service not configured")
	}

	moduleLabel := args[0]
	paths := args[1:]

	files := make([]domain.UploadFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		files = append(files, domain.UploadFile{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	cmd.Printf("Uploading %d file(s) into %q...\n", len(files), moduleLabel)

	result, err := library.UploadBatch(context.Background(), files, moduleLabel,
		func(p domain.UploadProgress) {
			cmd.Printf("\r[%d/%d] %s (%s): %s",
				p.Index, p.Total, p.FileName, humanize.Bytes(uint64(p.SizeBytes)), p.Message)
		})
	cmd.Println()
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Module %q ready (store %s).\n", result.Module.Name, result.Module.StoreHandle)
	for _, doc := range result.Module.Documents {
		cmd.Printf("  - %s\n", doc)
	}

	if len(result.Failures) > 0 {
		cmd.Println()
		cmd.Printf("%d file(s) did not index:\n", len(result.Failures))
		for _, failure := range result.Failures {
			cmd.Printf("  - %s: %v\n", failure.FileName, failure.Err)
		}
	}

	return nil
}
