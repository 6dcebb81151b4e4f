// Package utils holds small interactive helpers used by the CLI.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
)

func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// OpenEditor opens the given file in the user's preferred editor.
// It respects $VISUAL then $EDITOR. On Windows if neither is set it falls
// back to notepad; on Unix it falls back to vi.
func OpenEditor(path string) error {
	cmd := exec.Command(editorCommand(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "open editor")
	}
	return nil
}

// EditText writes initial to a temporary file named after pattern, opens it in
// the editor and returns the saved content.
func EditText(initial, pattern string) (string, error) {
	dir, err := os.MkdirTemp("", "relcfg-edit-")
	if err != nil {
		return "", errors.Wrap(err, "create temp dir")
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, pattern)
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		return "", errors.Wrap(err, "write temp file")
	}
	if err := OpenEditor(path); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "read edited file")
	}
	return string(b), nil
}
