// Package executor runs stored snippets through their language interpreter
// as a bounded-time child process. Isolation is process-level only: a
// timeout and a separate address space, nothing more.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"snippy/internal/common"
	"snippy/internal/logging"
	"snippy/internal/models"
)

// interpreters maps an executable language tag to the interpreter binary
// used to run it. Tags outside this table are not executable.
var interpreters = map[string]string{
	"bash":       "bash",
	"sh":         "sh",
	"zsh":        "zsh",
	"fish":       "fish",
	"python":     "python3",
	"python3":    "python3",
	"py":         "python3",
	"node":       "node",
	"javascript": "node",
	"js":         "node",
	"ruby":       "ruby",
	"rb":         "ruby",
	"perl":       "perl",
	"pl":         "perl",
}

// extensions maps a language tag to the temp-file suffix handed to the
// interpreter. Ergonomics only, not a security boundary.
var extensions = map[string]string{
	"bash":       ".sh",
	"sh":         ".sh",
	"zsh":        ".zsh",
	"fish":       ".fish",
	"python":     ".py",
	"python3":    ".py",
	"py":         ".py",
	"node":       ".js",
	"javascript": ".js",
	"js":         ".js",
	"ruby":       ".rb",
	"rb":         ".rb",
	"perl":       ".pl",
	"pl":         ".pl",
}

// CanExecute reports whether the language tag is on the execution allow-list.
func CanExecute(language string) bool {
	_, ok := interpreters[strings.ToLower(language)]
	return ok
}

// Interpreter returns the interpreter binary mapped to a language tag.
func Interpreter(language string) (string, bool) {
	interp, ok := interpreters[strings.ToLower(language)]
	return interp, ok
}

// AvailableInterpreters reports, per representative language, whether the
// interpreter binary is present on the host. Used by the info command.
func AvailableInterpreters() map[string]bool {
	checks := map[string]string{
		"bash":   "bash",
		"python": "python3",
		"node":   "node",
		"ruby":   "ruby",
		"perl":   "perl",
	}

	info := make(map[string]bool, len(checks))
	for name, binary := range checks {
		_, err := exec.LookPath(binary)
		info[name] = err == nil
	}
	return info
}

// Result captures the outcome of one execution.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Engine executes snippets.
type Engine struct {
	log logging.Logger
}

// NewEngine creates an execution engine.
func NewEngine(log logging.Logger) *Engine {
	return &Engine{log: log}
}

// Execute materializes the snippet content into a temporary file and runs it
// under the mapped interpreter, capturing stdout and stderr.
//
// Categorized failures:
//   - common.ErrUnsupportedLanguage: tag not on the allow-list (returned
//     before any filesystem work);
//   - common.ErrInterpreterUnavailable: interpreter binary missing from PATH;
//   - common.ErrTimeout: wall-clock budget exceeded, child terminated; the
//     result carries whatever output was captured before termination;
//   - common.ErrExecution: the process could not be started.
//
// A clean start with a non-zero exit code is not an error: the result has
// Success=false and the captured stderr. The temporary file is removed on
// every exit path.
func (e *Engine) Execute(ctx context.Context, snippet *models.Snippet, workdir string, timeout time.Duration) (*Result, error) {
	language := strings.ToLower(snippet.Language)

	interp, ok := interpreters[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedLanguage, snippet.Language)
	}

	interpPath, err := exec.LookPath(interp)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInterpreterUnavailable, interp)
	}

	ext, ok := extensions[language]
	if !ok {
		ext = ".txt"
	}

	scriptPath := filepath.Join(os.TempDir(), "snippy-"+uuid.NewString()+ext)
	if err := os.WriteFile(scriptPath, []byte(snippet.Content), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp script: %w", err)
	}
	defer func() {
		if err := os.Remove(scriptPath); err != nil {
			e.log.Warn(ctx, "failed to remove temp script", "path", scriptPath)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, interpPath, scriptPath)
	cmd.Dir = workdir // empty means the caller's current directory

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debug(ctx, "executing snippet", "id", snippet.ID, "interpreter", interp, "timeout", timeout)

	runErr := cmd.Run()

	result := &Result{
		Success: runErr == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if runErr == nil {
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result, fmt.Errorf("%w after %s", common.ErrTimeout, timeout)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		// ran to completion with a non-zero exit code; stderr tells the story
		return result, nil
	}

	return result, fmt.Errorf("%w: %v", common.ErrExecution, runErr)
}
