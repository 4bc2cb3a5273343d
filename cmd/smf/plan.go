package main

import (
	"context"

	"github.com/spf13/cobra"

	ddlmysql "smf/internal/ddl/mysql"
	"smf/internal/output"
)

type planFlags struct {
	currentFile string
	outFile     string
	format      string
	allowDrops  bool
}

func planCmd() *cobra.Command {
	pf := &planFlags{}
	cmd := &cobra.Command{
		Use:   "plan <desired.sql>",
		Short: "Emit the ordered DDL statements needed to reach the desired schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := buildPlan(args[0], pf)
			return err
		},
	}

	cmd.Flags().StringVar(&pf.currentFile, "current", "", "parse the current schema from this SQL file instead of introspecting --dsn")
	cmd.Flags().StringVarP(&pf.outFile, "output", "o", "", "output file for the plan")
	cmd.Flags().StringVarP(&pf.format, "format", "f", "", "output format: sql, json, or summary")
	cmd.Flags().BoolVar(&pf.allowDrops, "allow-column-drops", false, "emit DROP COLUMN statements for columns absent from the desired schema")

	return cmd
}

// buildPlan runs the diff+plan pipeline and writes the formatted result,
// returning the raw ordered statements for callers (apply) that need them.
func buildPlan(desiredPath string, pf *planFlags) ([]string, error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	desired, err := loadDesired(desiredPath)
	if err != nil {
		return nil, err
	}
	current, err := loadCurrent(ctx, cfg, log, pf.currentFile)
	if err != nil {
		return nil, err
	}

	delta := computeDelta(current, desired, cfg)
	statements := ddlmysql.Plan(delta, ddlmysql.Options{AllowColumnDrops: pf.allowDrops})

	formatter, err := output.NewFormatter(pf.format)
	if err != nil {
		return nil, err
	}
	formatted, err := formatter.FormatPlan(statements)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(formatted, pf.outFile); err != nil {
		return nil, err
	}
	return statements, nil
}
