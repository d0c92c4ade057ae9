package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snippy/internal/clipboard"
	"snippy/internal/executor"
)

func getStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp

			stats, err := a.svc.Stats(cmd.Context())
			if err != nil {
				return err
			}

			a.render.Stats(stats)
			return nil
		},
	}
}

func getInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show system information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			enabled, err := a.svc.IsEncryptionEnabled(ctx)
			if err != nil {
				return err
			}

			state := "disabled"
			if enabled {
				state = "enabled"
			}

			a.render.Info("Database:   " + a.cfg.DatabasePath)
			a.render.Info("Encryption: " + state)
			a.render.Info("Clipboard:  " + clipboard.Info())

			a.render.Info("Interpreters:")
			for name, available := range executor.AvailableInterpreters() {
				mark := "✗"
				if available {
					mark = "✓"
				}
				a.render.Info(fmt.Sprintf("  %s %s", mark, name))
			}
			return nil
		},
	}
}
