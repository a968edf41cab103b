// Package main provides the CLI entrypoint for techdeck.
// It wires subcommands (preview, template, transform, master, render, inspect,
// verify, all), loads configuration, and initializes logging.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/techdeck/internal/config"
	"github.com/tsawler/techdeck/internal/logger"
)

// newRootCommand builds the command tree. Configuration is loaded once the
// flags are parsed and shared with every subcommand through cfg.
func newRootCommand() *cobra.Command {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:           "techdeck",
		Short:         "Generates and restyles tech-business presentations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			*cfg = *loaded

			if cmd.Flags().Changed("out") {
				cfg.Output.Dir, _ = cmd.Flags().GetString("out")
			}
			if cmd.Flags().Changed("input") {
				cfg.Input, _ = cmd.Flags().GetString("input")
			}

			logger.Setup(cfg.Environment)
			cmd.SetContext(logger.WithFields(cmd.Context(), zap.String("command", cmd.Name())))

			return nil
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")
	rootCmd.PersistentFlags().String("out", "", "Output directory")
	rootCmd.PersistentFlags().String("input", "", "Deck to restyle")

	rootCmd.AddCommand(
		previewCommand(cfg),
		templateCommand(cfg),
		transformCommand(cfg),
		masterCommand(cfg),
		allCommand(cfg),
		renderCommand(cfg),
		inspectCommand(),
		verifyCommand(cfg),
	)

	return rootCmd
}

// main executes the CLI, logging any error before exiting with status 1.
func main() {
	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		logger.Error(ctx, "command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
