package cmd

import (
	"context"
	"fmt"

	"animal-search-admin/feature/moderation/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the pending moderation queues",
}

var queueListCmd = &cobra.Command{
	Use:       "list <matches|duplicates>",
	Short:     "List the pending items of a queue",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.QueueMatches), string(models.QueueDuplicates)},
	RunE: func(cmd *cobra.Command, args []string) error {
		queue, err := models.ParseQueueType(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.moderationService().LoadQueue(ctx, queue)
		if err != nil {
			return fmt.Errorf("failed to load queue: %w", err)
		}

		if len(items) == 0 {
			fmt.Printf("Queue %s is empty.\n", queue)
			return nil
		}

		fmt.Printf("\n=== %s (%d pending) ===\n", queue, len(items))
		for _, it := range items {
			printItem(it)
		}
		a.logger.Debug("Queue listed", zap.String("queue", string(queue)), zap.Int("count", len(items)))
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueListCmd)
	RootCmd.AddCommand(queueCmd)
}

func printItem(it models.PendingItem) {
	fmt.Printf("\n%s -> animal %s\n", it.ID, it.AnimalID)
	if it.SubmittedAt != nil {
		fmt.Printf("  submitted: %s\n", it.SubmittedAt.Format("2006-01-02 15:04"))
	}
	if it.Condition != "" {
		fmt.Printf("  condition: %s\n", it.Condition)
	}
	fmt.Printf("  old image: %s\n", it.OldImage)
	fmt.Printf("  new image: %s\n", it.NewImage)
	for k, v := range it.NewData {
		fmt.Printf("  %s: %v\n", k, v)
	}
	if it.ReferenceMissing {
		fmt.Println("  ! referenced record no longer exists")
	}
}
