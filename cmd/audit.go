package cmd

import (
	"context"
	"fmt"
	"time"

	"animal-search-admin/feature/moderation/models"

	"github.com/spf13/cobra"
)

var auditDateFlag string

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Read the decision audit journal",
}

var auditListCmd = &cobra.Command{
	Use:   "list <matches|duplicates>",
	Short: "List the decisions journaled for one queue and day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		queue, err := models.ParseQueueType(args[0])
		if err != nil {
			return err
		}

		day := time.Now().UTC()
		if auditDateFlag != "" {
			if day, err = time.Parse("2006-01-02", auditDateFlag); err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
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

		entries, err := a.moderationService().AuditLog(ctx, queue, day)
		if err != nil {
			return fmt.Errorf("failed to read audit journal: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("No %s decisions on %s.\n", queue, day.Format("2006-01-02"))
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-8s %-6s steps=%d ray=%s\n",
				e.ResolvedAt.Format(time.RFC3339), e.RequestID, e.Decision, len(e.Outcome.Steps), e.RayID)
		}
		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditDateFlag, "date", "", "Day to list (YYYY-MM-DD, default today UTC)")
	auditCmd.AddCommand(auditListCmd)
	RootCmd.AddCommand(auditCmd)
}
