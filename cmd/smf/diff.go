package main

import (
	"context"

	"github.com/spf13/cobra"

	"smf/internal/output"
)

type diffFlags struct {
	currentFile string
	outFile     string
	format      string
}

func diffCmd() *cobra.Command {
	df := &diffFlags{}
	cmd := &cobra.Command{
		Use:   "diff <desired.sql>",
		Short: "Show the Delta between the current and desired schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(args[0], df)
		},
	}

	cmd.Flags().StringVar(&df.currentFile, "current", "", "parse the current schema from this SQL file instead of introspecting --dsn")
	cmd.Flags().StringVarP(&df.outFile, "output", "o", "", "output file for the diff")
	cmd.Flags().StringVarP(&df.format, "format", "f", "", "output format: sql, json, or summary")

	return cmd
}

func runDiff(desiredPath string, df *diffFlags) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}

	ctx := context.Background()
	desired, err := loadDesired(desiredPath)
	if err != nil {
		return err
	}
	current, err := loadCurrent(ctx, cfg, log, df.currentFile)
	if err != nil {
		return err
	}

	delta := computeDelta(current, desired, cfg)

	formatter, err := output.NewFormatter(df.format)
	if err != nil {
		return err
	}
	formatted, err := formatter.FormatDiff(delta)
	if err != nil {
		return err
	}

	return writeOutput(formatted, df.outFile)
}
