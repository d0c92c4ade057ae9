package main

import (
	"strings"

	"github.com/spf13/cobra"

	"snippy/internal/models"
)

func getListCommand() *cobra.Command {
	var (
		search  string
		lang    string
		tags    string
		limit   int
		offset  int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snippets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.ListLimit
			}

			rows, err := a.svc.List(ctx, models.ListFilter{
				Search:   search,
				Language: strings.ToLower(lang),
				Tags:     parseTags(tags),
				Limit:    limit,
				Offset:   offset,
			}, a.key)
			if err != nil {
				return err
			}

			a.render.SnippetList(rows, verbose)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "search term over title and content")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "filter by language")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "filter by tags (comma-separated, all must match)")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset for pagination")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show content preview")

	return cmd
}

func getSearchCommand() *cobra.Command {
	var (
		lang  string
		tags  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search snippets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			rows, err := a.svc.List(ctx, models.ListFilter{
				Search:   query,
				Language: strings.ToLower(lang),
				Tags:     parseTags(tags),
				Limit:    limit,
			}, a.key)
			if err != nil {
				return err
			}

			a.render.SnippetList(rows, true)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "filter by language")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "filter by tags (comma-separated)")
	cmd.Flags().IntVar(&limit, "limit", 20, "limit results")

	return cmd
}
