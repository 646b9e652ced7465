package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.json>",
	Short: "Load a JSON fixture into the record store",
	Long: `Writes the active records, match requests and duplicate requests of a fixture
into the configured backend. Existing documents with the same id are overwritten.

The memory backend does not survive the process; use SERVER_SEED_FILE with start instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.seedFrom(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		a.logger.Info("Seeded record store", zap.String("file", args[0]), zap.Int("documents", n))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
