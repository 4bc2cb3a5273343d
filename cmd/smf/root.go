// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"smf/internal/config"
	"smf/internal/logging"
)

// globalFlags holds the flags bound once on the root command and read by
// every subcommand.
type globalFlags struct {
	dsn           string
	configPath    string
	ignoreTables  []string
	ignoreColumns []string
	logLevel      string
	logFormat     string
}

var flags = &globalFlags{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "smf",
		Short: "Declarative MySQL schema synchronizer",
	}

	rootCmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "database connection string (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringArrayVar(&flags.ignoreTables, "ignore-table", nil, "table to exclude from diffing (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&flags.ignoreColumns, "ignore-column", nil, "column to exclude from diffing, as 'table.column' or bare 'column' (repeatable)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(applyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEnv resolves the effective config and logger for this invocation:
// config file, then global flag overrides.
func loadEnv() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	if flags.dsn != "" {
		cfg.Database.DSN = flags.dsn
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logging.Format = flags.logFormat
	}
	cfg.IgnoreTables = append(cfg.IgnoreTables, flags.ignoreTables...)
	cfg.IgnoreColumns = append(cfg.IgnoreColumns, flags.ignoreColumns...)

	log, err := logging.NewZap(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func writeOutput(content, outFile string) error {
	if outFile == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "output saved to %s\n", outFile)
	return nil
}
