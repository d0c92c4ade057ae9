package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// parseID turns a positional argument into a snippet id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid snippet id: %q", arg)
	}
	return id, nil
}

func getShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a specific snippet",
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

			a.render.SnippetDetail(snippet)
			return nil
		},
	}
}

func getCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy ID",
		Short: "Copy snippet content to the clipboard",
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

			if err := a.copyToClipboard(ctx, snippet.Content); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}

			a.render.Success(fmt.Sprintf("Copied snippet #%d to clipboard", id))
			return nil
		},
	}
}
