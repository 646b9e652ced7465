package cmd

import (
	"context"
	"errors"
	"fmt"

	"animal-search-admin/feature/integrity"
	"animal-search-admin/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the record store and bucket",
	Long:  `Checks for stale queue references, the bucket folder structure and the SQL schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "List pending requests whose animal record is gone",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the SQL backend schema against the store models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(referencesCmd, structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func runIntegrityChecks(ctx context.Context, runReferences, runStructure, runSchema bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	logg := a.logger
	svc := integrity.NewService(a.integrityOptions())

	if runReferences {
		logg.Info("Checking queue references...")
		report, err := svc.CheckReferences(ctx)
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}
		if len(report.Stale) == 0 {
			logg.Info("All pending requests reference existing records.",
				zap.Int("matches", report.MatchesChecked),
				zap.Int("duplicates", report.DuplicatesChecked))
		}
		for _, s := range report.Stale {
			logg.Warn("Stale reference",
				zap.String("queue", string(s.Queue)),
				zap.String("request_id", s.RequestID),
				zap.String("record_id", s.RecordID))
		}
	}

	if runStructure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case errors.Is(err, integrity.ErrSkipped):
			logg.Info("Object storage disabled, structure check skipped.")
		case errors.Is(err, checks.ErrBucketMissing) && fixFlag:
			missing = a.integrityOptions().Folders
			fallthrough
		case err == nil:
			if len(missing) == 0 {
				logg.Info("Structure is intact.")
				break
			}
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if !fixFlag {
				logg.Info("Run with --fix to create missing folders.")
				break
			}
			logg.Info("Fixing missing folders...")
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		default:
			return fmt.Errorf("structure check failed: %w", err)
		}
	}

	if runSchema {
		logg.Info("Checking SQL schema...")
		report, err := svc.CheckSchema()
		switch {
		case errors.Is(err, integrity.ErrSkipped):
			logg.Info("Backend is not sql, schema check skipped.")
		case err != nil:
			logg.Error("Schema check failed", zap.Error(err))
		case report.Matched:
			logg.Info("Schema matches the store models.", zap.String("driver", report.Driver))
		default:
			logg.Warn("Schema mismatches found", zap.String("driver", report.Driver))
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if tbl.Status == "missing" {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	return nil
}
