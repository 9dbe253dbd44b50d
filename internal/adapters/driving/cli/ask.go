package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [store-handle] [question]",
	Short: "Ask a question grounded in a module's documents",
	Args:  cobra.ExactArgs(2),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerer == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerer.Ask(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("asking question: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for i, citation := range answer.Citations {
			cmd.Printf("  [%d] %s\n", i+1, citation.Source)
			if citation.Snippet != "" {
				cmd.Printf("      %s\n", citation.Snippet)
			}
		}
	}

	return nil
}
