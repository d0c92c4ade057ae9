package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snippy/internal/common"
	"snippy/internal/models"
)

func getExportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all snippets as JSON or Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			f, ok := models.ParseExportFormat(format)
			if !ok {
				return fmt.Errorf("%w: %q", common.ErrInvalidExportFormat, format)
			}

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			data, err := a.svc.Export(ctx, f, a.key)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Print(data)
				return nil
			}

			if err := os.WriteFile(output, []byte(data), 0o600); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}
			a.render.Success(fmt.Sprintf("Exported %s to %s", format, output))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "export format: json, md or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
