package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"smf/internal/apply"
)

type applyFlags struct {
	planFlags
	planFile         string
	dryRun           bool
	noTransaction    bool
	allowNonTxDDL    bool
	unsafe           bool
	skipConfirmation bool
	timeoutSeconds   int
}

func applyCmd() *cobra.Command {
	af := &applyFlags{}
	cmd := &cobra.Command{
		Use:   "apply [desired.sql]",
		Short: "Execute the statements needed to reach the desired schema",
		Long: `Computes the Delta between the current and desired schema, renders the
ordered DDL plan, runs preflight checks, and executes the statements against
--dsn.

Pass --plan-file instead of a desired-schema argument to execute a plan
saved earlier with "smf plan -o file.sql" or "smf plan -f json -o file.json",
without recomputing the diff.

Destructive statements (DROP TABLE, DROP COLUMN) are refused unless
--unsafe is given. Non-transaction-safe plans are refused unless
--allow-non-transactional is given, since MySQL DDL causes an implicit
commit mid-batch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if af.planFile != "" {
				if len(args) > 0 {
					return fmt.Errorf("apply: pass either a desired-schema file or --plan-file, not both")
				}
				return runApplyFromPlanFile(af)
			}
			if len(args) != 1 {
				return fmt.Errorf("apply: requires a desired-schema file unless --plan-file is given")
			}
			return runApply(args[0], af)
		},
	}

	cmd.Flags().StringVar(&af.currentFile, "current", "", "parse the current schema from this SQL file instead of introspecting --dsn")
	cmd.Flags().BoolVar(&af.allowDrops, "allow-column-drops", false, "emit DROP COLUMN statements for columns absent from the desired schema")
	cmd.Flags().StringVar(&af.planFile, "plan-file", "", "execute a plan saved earlier by 'smf plan -o <file>' instead of recomputing it")
	cmd.Flags().BoolVarP(&af.dryRun, "dry-run", "d", false, "print statements and run preflight checks without executing")
	cmd.Flags().BoolVar(&af.noTransaction, "no-transaction", false, "do not wrap the plan in a transaction even if every statement is transaction-safe")
	cmd.Flags().BoolVar(&af.allowNonTxDDL, "allow-non-transactional", false, "allow execution when the plan contains transaction-unsafe DDL")
	cmd.Flags().BoolVarP(&af.unsafe, "unsafe", "u", false, "allow destructive operations (DROP TABLE, DROP COLUMN)")
	cmd.Flags().BoolVarP(&af.skipConfirmation, "yes", "y", false, "skip the interactive confirmation prompt")
	cmd.Flags().IntVar(&af.timeoutSeconds, "timeout", 300, "connection timeout in seconds")

	return cmd
}

// runApplyFromPlanFile executes a plan read back from disk rather than
// recomputed from a desired-schema file, via Applier.ParseStatements.
func runApplyFromPlanFile(af *applyFlags) error {
	data, err := os.ReadFile(af.planFile)
	if err != nil {
		return fmt.Errorf("failed to read plan file %q: %w", af.planFile, err)
	}

	cfg, _, err := loadEnv()
	if err != nil {
		return err
	}

	applier := apply.NewApplier(apply.Options{
		DSN:                   cfg.DSN(),
		DryRun:                af.dryRun,
		Transaction:           !af.noTransaction,
		AllowNonTransactional: af.allowNonTxDDL,
		Unsafe:                af.unsafe,
		SkipConfirmation:      af.skipConfirmation,
		Out:                   os.Stdout,
	})
	defer func() { _ = applier.Close() }()

	statements := applier.ParseStatements(string(data))
	if len(statements) == 0 {
		fmt.Println("no statements to apply; plan file is empty")
		return nil
	}

	return execute(applier, af, statements)
}

func runApply(desiredPath string, af *applyFlags) error {
	statements, err := buildPlan(desiredPath, &af.planFlags)
	if err != nil {
		return err
	}
	if len(statements) == 0 {
		fmt.Println("no statements to apply; schema already matches")
		return nil
	}

	cfg, _, err := loadEnv()
	if err != nil {
		return err
	}

	applier := apply.NewApplier(apply.Options{
		DSN:                   cfg.DSN(),
		DryRun:                af.dryRun,
		Transaction:           !af.noTransaction,
		AllowNonTransactional: af.allowNonTxDDL,
		Unsafe:                af.unsafe,
		SkipConfirmation:      af.skipConfirmation,
		Out:                   os.Stdout,
	})
	defer func() { _ = applier.Close() }()

	return execute(applier, af, statements)
}

// execute runs preflight checks and applies statements through applier,
// shared by both the recompute-the-plan and --plan-file code paths.
func execute(applier *apply.Applier, af *applyFlags, statements []string) error {
	preflight := applier.PreflightChecks(statements, af.unsafe)

	if af.dryRun {
		return applier.Apply(context.Background(), statements, preflight)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(af.timeoutSeconds)*time.Second)
	defer cancel()

	if err := applier.Connect(ctx); err != nil {
		return err
	}
	return applier.Apply(ctx, statements, preflight)
}
