// Package security flags shell commands in release configurations that look
// destructive. semantic-release runs exec plugin steps through a shell, so a
// stored template can smuggle arbitrary commands into a project.
package security

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/VoxDroid/relcfg/internal/document"
)

// ExecPlugin is the plugin whose *Cmd options are run through a shell.
const ExecPlugin = "@semantic-release/exec"

// ErrUnsafeCommand is matched by every UnsafeCommandError.
var ErrUnsafeCommand = errors.New("unsafe command")

var dangerousPatterns = []*regexp.Regexp{
	// Destructive filesystem ops; rm is handled by removesHome.
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	// fork bombs (e.g. :(){ :|:& };:)
	regexp.MustCompile(`:\(\)\s*\{`),
	// package managers removing all packages
	regexp.MustCompile(`(?i)\bapt\-get\s+remove\s+`),
	regexp.MustCompile(`(?i)\byum\s+remove\s+`),
	// wipe disk
	regexp.MustCompile(`(?i)\bwipefs\b`),
	// piping downloads into a shell
	regexp.MustCompile(`(?i)\b(curl|wget)\b[^|]*\|\s*(ba|z)?sh\b`),
}

// UnsafeCommandError names the exec step that failed CheckAllowed.
type UnsafeCommandError struct {
	Step    string
	Command string
	Reason  string
}

func (e *UnsafeCommandError) Error() string {
	return fmt.Sprintf("%s %s: %s: %q", ExecPlugin, e.Step, e.Reason, e.Command)
}

func (e *UnsafeCommandError) Unwrap() error { return ErrUnsafeCommand }

// CheckAllowed returns nil if the command is allowed to run, or an error
// describing why it's blocked. Checking is conservative and not exhaustive.
func CheckAllowed(command string) error {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return errors.New("empty command")
	}
	words, err := shellquote.Split(cmd)
	if err != nil {
		return errors.Wrapf(ErrUnsafeCommand, "cannot parse shell words: %v", err)
	}
	if removesHome(words) {
		return errors.Wrap(ErrUnsafeCommand, "recursive delete of / or home")
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(cmd) {
			return errors.Wrap(ErrUnsafeCommand, "command appears destructive")
		}
	}
	return nil
}

var protectedPaths = map[string]bool{"/": true, "/*": true, "~": true, "~/": true, "~/*": true, "$HOME": true, "${HOME}": true}

// removesHome reports whether any rm invocation in words is recursive and
// targets the root or home directory.
func removesHome(words []string) bool {
	inRm, recursive, target := false, false, false
	for _, w := range words {
		switch {
		case w == ";" || w == "&&" || w == "||" || w == "|":
			if inRm && recursive && target {
				return true
			}
			inRm, recursive, target = false, false, false
		case w == "rm" || strings.HasSuffix(w, "/rm"):
			inRm = true
		case inRm && (w == "--recursive" || (strings.HasPrefix(w, "-") && !strings.HasPrefix(w, "--") && strings.ContainsAny(w, "rR"))):
			recursive = true
		case inRm && protectedPaths[strings.TrimRight(w, ";")]:
			target = true
		}
	}
	return inRm && recursive && target
}

// CheckConfig runs CheckAllowed on every exec plugin step (options ending in
// Cmd). Empty steps are ignored.
func CheckConfig(cfg document.Config) error {
	for _, p := range cfg.Plugins {
		if p.Name != ExecPlugin {
			continue
		}
		steps := make([]string, 0, len(p.Options))
		for k := range p.Options {
			if strings.HasSuffix(k, "Cmd") {
				steps = append(steps, k)
			}
		}
		sort.Strings(steps)
		for _, step := range steps {
			cmd, ok := p.Options[step].(string)
			if !ok || strings.TrimSpace(cmd) == "" {
				continue
			}
			if err := CheckAllowed(cmd); err != nil {
				return &UnsafeCommandError{Step: step, Command: cmd, Reason: strings.TrimSuffix(err.Error(), ": "+ErrUnsafeCommand.Error())}
			}
		}
	}
	return nil
}
