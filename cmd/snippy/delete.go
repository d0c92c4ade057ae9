package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snippy/internal/terminal"
)

func getDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			snippet, err := a.svc.Get(ctx, id, a.key)
			if err != nil {
				return err
			}

			if !force {
				a.render.Info("Snippet to delete: " + snippet.Title)
				if !terminal.Confirm(a.reader, "Are you sure you want to delete this snippet?", os.Stdout) {
					return nil
				}
			}

			if err := a.svc.Delete(ctx, id); err != nil {
				return err
			}

			a.render.Success(fmt.Sprintf("Deleted snippet #%d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
