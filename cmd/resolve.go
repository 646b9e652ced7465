package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"animal-search-admin/feature/moderation"
	"animal-search-admin/feature/moderation/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the resolve commands
	acceptFlag     bool
	rejectFlag     bool
	animalIDFlag   string
	existingIDFlag string
	yesConfirm     bool
)

// resolveCmd is the parent command for operator decisions.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Accept or reject a pending moderation request",
	Long: `Apply an operator decision to one pending request.
The planned steps are printed and must be confirmed before anything is deleted.`,
}

var resolveMatchCmd = &cobra.Command{
	Use:   "match <request-id>",
	Short: "Resolve a possible same-animal match",
	Long: `Accept deletes the candidate animal record and then the request.
Reject deletes only the request.

Examples:
  resolve match r1 --accept
  resolve match r1 --reject --yes
  resolve match r1 --accept --animal-id a1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd.Context(), models.QueueMatches, args[0])
	},
}

var resolveDuplicateCmd = &cobra.Command{
	Use:   "duplicate <request-id>",
	Short: "Resolve a possible duplicate registration",
	Long: `Accept inserts the new registration, deletes the existing record and then the request.
Reject deletes only the request.

Examples:
  resolve duplicate d1 --accept
  resolve duplicate d1 --reject --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd.Context(), models.QueueDuplicates, args[0])
	},
}

func init() {
	resolveCmd.AddCommand(resolveMatchCmd, resolveDuplicateCmd)

	for _, c := range []*cobra.Command{resolveMatchCmd, resolveDuplicateCmd} {
		c.Flags().BoolVar(&acceptFlag, "accept", false, "Accept the request")
		c.Flags().BoolVar(&rejectFlag, "reject", false, "Reject the request")
		c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
		c.MarkFlagsMutuallyExclusive("accept", "reject")
		c.MarkFlagsOneRequired("accept", "reject")
	}
	resolveMatchCmd.Flags().StringVar(&animalIDFlag, "animal-id", "", "Candidate animal id (defaults to the one stored in the request)")
	resolveDuplicateCmd.Flags().StringVar(&existingIDFlag, "existing-id", "", "Existing animal id (defaults to the one stored in the request)")

	RootCmd.AddCommand(resolveCmd)
}

func decisionFromFlags() models.Decision {
	if acceptFlag {
		return models.DecisionAccept
	}
	return models.DecisionReject
}

func runResolve(ctx context.Context, queue models.QueueType, requestID string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	svc := a.moderationService()
	decision := decisionFromFlags()

	var plan *moderation.Plan
	switch queue {
	case models.QueueMatches:
		plan, err = svc.PlanMatch(ctx, requestID, animalIDFlag, decision)
	default:
		plan, err = svc.PlanDuplicate(ctx, requestID, existingIDFlag, nil, decision)
	}
	if err != nil {
		return fmt.Errorf("failed to plan resolution: %w", err)
	}

	if plan.Outcome.AlreadyResolved {
		a.logger.Info("Request is no longer pending, nothing to do", zap.String("request_id", requestID))
		return nil
	}

	printPlan(plan)

	if !confirmDestructiveAction() {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	out, err := svc.Apply(ctx, plan)
	if err != nil {
		var modErr *moderation.Error
		if errors.As(err, &modErr) && modErr.Outcome != nil {
			printOutcome(*modErr.Outcome)
		}
		return err
	}

	printOutcome(out)
	a.logger.Info("Successfully resolved request",
		zap.String("request_id", requestID),
		zap.Int("steps", len(out.Steps)))
	return nil
}

func printPlan(plan *moderation.Plan) {
	fmt.Printf("\n%s %s request %s\n", strings.ToUpper(string(plan.Outcome.Decision)), plan.Outcome.Queue, plan.Outcome.RequestID)
	for _, w := range plan.Outcome.Warnings {
		fmt.Printf("  ! %s\n", w)
	}
	for _, line := range plan.Describe() {
		fmt.Printf("  %s\n", line)
	}
}

func printOutcome(out models.Outcome) {
	fmt.Printf("\nCompleted %d/%d steps\n", out.LastCompleted+1, out.Planned)
	for _, s := range out.Steps {
		fmt.Printf("  ✓ %s\n", s)
	}
	if out.RecordCreated {
		fmt.Printf("New record: %s\n", out.CreatedRecordID)
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
