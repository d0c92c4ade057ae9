package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"snippy/internal/common"
	"snippy/internal/executor"
	"snippy/internal/security"
	"snippy/internal/terminal"
)

func getRunCommand() *cobra.Command {
	var (
		workdir string
		timeout int
		force   bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Execute a snippet",
		Long: `Execute a stored snippet with its language interpreter. Content is checked
against a denylist of destructive patterns first; anything flagged needs an
explicit confirmation. Execution runs in a child process under a wall-clock
timeout.`,
		Args: cobra.ExactArgs(1),
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

			if !executor.CanExecute(snippet.Language) {
				return fmt.Errorf("%w: %q", common.ErrUnsupportedLanguage, snippet.Language)
			}

			// advisory check; the user has the final word
			if verdict := security.Validate(snippet.Content, snippet.Language); !verdict.Safe {
				a.render.Warning("Safety warning: " + verdict.Reason)
				if !terminal.Confirm(a.reader, "Continue execution?", os.Stdout) {
					return nil
				}
			}

			if !quiet {
				a.render.Info(fmt.Sprintf("Executing snippet #%d: %s", id, snippet.Title))
				a.render.SnippetDetail(snippet)

				if !force && !terminal.Confirm(a.reader, "Execute this snippet?", os.Stdout) {
					return nil
				}
			}

			execTimeout := a.cfg.ExecTimeout
			if cmd.Flags().Changed("timeout") {
				execTimeout = time.Duration(timeout) * time.Second
			}

			res, err := a.engine.Execute(ctx, snippet, workdir, execTimeout)
			if err != nil {
				if !errors.Is(err, common.ErrTimeout) {
					return err
				}
				a.render.Error(fmt.Sprintf("Execution timed out after %s", execTimeout))
			}

			if res != nil {
				if res.Stdout != "" {
					a.render.Info("Output:")
					fmt.Print(res.Stdout)
				}
				if res.Stderr != "" {
					a.render.Info("Errors:")
					fmt.Print(res.Stderr)
				}
				if res.Success {
					a.render.Success("Execution completed successfully")
				} else if err == nil {
					a.render.Error("Execution failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&workdir, "workdir", "", "working directory for execution")
	cmd.Flags().IntVar(&timeout, "timeout", 30, "execution timeout in seconds")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "minimal output")

	return cmd
}
