// Package security implements the advisory safety check applied to snippet
// content before execution. It is a heuristic pattern scan, not a sandbox:
// the caller decides whether to proceed after a confirmation step, the
// validator never blocks execution itself.
package security

import (
	"fmt"
	"strings"
)

// maxLineLength is the obfuscation threshold: any single line longer than
// this is flagged regardless of pattern matches.
const maxLineLength = 1000

// dangerousPatterns maps a lower-cased language tag to literal substrings
// considered dangerous: destructive filesystem operations, privilege and
// power actions, pipe-to-shell idioms, dynamic-eval constructs, and raw
// process/file primitives. Languages absent from the table have an empty
// denylist.
var dangerousPatterns = map[string][]string{
	"bash": {
		"rm -rf", "rm -r /", "> /dev/", "dd if=", "mkfs",
		"fdisk", "parted", "format", "del /s", "rmdir /s",
		"shutdown", "reboot", "halt", "init 0", "init 6",
		"curl | sh", "wget | sh", "curl | bash", "wget | bash",
	},
	"python": {
		"os.system", "subprocess.call", "exec(", "eval(",
		"__import__", "open(", "file(", "input(", "raw_input(",
	},
	"javascript": {
		"require(", "process.exit", "child_process", "fs.unlink",
		"fs.rmdir", "fs.writeFile",
	},
}

// Verdict is the transient result of a safety check. It is never persisted.
type Verdict struct {
	Safe   bool
	Reason string
}

// Validate scans content against the denylist for the given language.
// The first matching pattern wins and is named in the reason. Independent of
// pattern matches, any over-long line is flagged as potential obfuscation.
func Validate(content, language string) Verdict {
	lowered := strings.ToLower(content)

	for _, pattern := range dangerousPatterns[strings.ToLower(language)] {
		if strings.Contains(lowered, pattern) {
			return Verdict{
				Safe:   false,
				Reason: fmt.Sprintf("potentially dangerous pattern detected: %s", pattern),
			}
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if len(line) > maxLineLength {
			return Verdict{
				Safe:   false,
				Reason: "very long line detected (potential obfuscation)",
			}
		}
	}

	return Verdict{Safe: true}
}
