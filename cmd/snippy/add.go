package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"snippy/internal/services"
	"snippy/internal/terminal"
)

func getAddCommand() *cobra.Command {
	var (
		lang   string
		tags   string
		desc   string
		secure bool
	)

	cmd := &cobra.Command{
		Use:   "add TITLE [CONTENT]",
		Short: "Add a new snippet",
		Long: `Add a new snippet. Content can be given as the second argument or typed
interactively (finish with Ctrl+D). With --secure the content is stored
encrypted, provided encryption has been enabled with secure-on.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := theApp
			ctx := cmd.Context()

			if err := a.ensureAuthenticated(ctx); err != nil {
				return err
			}

			var content string
			if len(args) == 2 {
				content = args[1]
			} else {
				var err error
				content, err = readContent(a)
				if err != nil {
					return err
				}
			}
			if content == "" {
				return fmt.Errorf("no content provided")
			}

			res, err := a.svc.Add(ctx, services.AddParams{
				Title:       args[0],
				Content:     content,
				Language:    strings.ToLower(lang),
				Tags:        parseTags(tags),
				Description: desc,
				Secure:      secure,
			}, a.key)
			if err != nil {
				return err
			}

			a.render.Success(fmt.Sprintf("Added snippet #%d: %s", res.ID, args[0]))
			if res.Downgraded {
				a.render.Warning("Secure flag ignored - encryption not enabled, stored as plaintext")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "programming language")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tags")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "description")
	cmd.Flags().BoolVarP(&secure, "secure", "s", false, "store with encryption")

	return cmd
}

func readContent(a *app) (string, error) {
	return terminal.GetMultiline(a.reader, "Enter snippet content (Ctrl+D to finish):", os.Stdout)
}

func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
