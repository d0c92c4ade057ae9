// Command snippy is a personal command-line store for reusable code and
// command fragments, with optional at-rest encryption and guarded local
// execution.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"snippy/internal/clipboard"
	"snippy/internal/common"
	"snippy/internal/config"
	"snippy/internal/display"
	"snippy/internal/executor"
	"snippy/internal/logging"
	"snippy/internal/services"
	"snippy/internal/storage"
	"snippy/internal/terminal"

	_ "modernc.org/sqlite"
)

// app carries the wired dependencies for one CLI invocation. The derived
// key, when present, lives only for the life of the command.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	svc    *services.SnippetService
	engine *executor.Engine
	render *display.Renderer
	reader *bufio.Reader
	log    logging.Logger
	key    []byte
}

var (
	configPath string
	theApp     *app
)

var rootCmd = &cobra.Command{
	Use:           "snippy",
	Short:         "Store, search, and summon code snippets right from your terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		theApp = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if theApp != nil && theApp.db != nil {
			_ = theApp.db.Close()
		}
	},
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if os.Getenv("SNIPPY_DEBUG") != "" {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	svc := services.NewSnippetService(db, log)

	return &app{
		cfg:    cfg,
		db:     db,
		svc:    svc,
		engine: executor.NewEngine(log),
		render: display.NewRenderer(os.Stdout),
		reader: bufio.NewReader(os.Stdin),
		log:    log,
	}, nil
}

// ensureAuthenticated prompts for the password and derives the key when the
// store has encryption enabled. With encryption off it is a no-op: records
// are plaintext and no key is needed.
func (a *app) ensureAuthenticated(ctx context.Context) error {
	enabled, err := a.svc.IsEncryptionEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled || a.key != nil {
		return nil
	}

	password, err := terminal.GetPassword("Enter encryption password: ", os.Stdout)
	if err != nil {
		return err
	}

	key, err := a.svc.Authenticate(ctx, password)
	if err != nil {
		if errors.Is(err, common.ErrAuthenticationFailed) {
			return fmt.Errorf("invalid password")
		}
		return err
	}
	a.key = key
	return nil
}

func (a *app) copyToClipboard(ctx context.Context, text string) error {
	return clipboard.Copy(ctx, text)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(
		getAddCommand(),
		getListCommand(),
		getSearchCommand(),
		getShowCommand(),
		getCopyCommand(),
		getRunCommand(),
		getDeleteCommand(),
		getExportCommand(),
		getStatsCommand(),
		getSecureOnCommand(),
		getSecureOffCommand(),
		getInfoCommand(),
	)
}
