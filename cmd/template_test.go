package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/store"
	"github.com/VoxDroid/relcfg/internal/template"
	"github.com/VoxDroid/relcfg/internal/user"
)

const storedBody = `{
  "branches": ££BRANCHES££,
  "plugins": ["@semantic-release/commit-analyzer", "@semantic-release/github"]
}
`

func addTemplateFlags(c *cobra.Command) {
	c.Flags().String("from-file", "", "")
	c.Flags().StringP("description", "d", "", "")
}

func writeBody(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "body.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write body: %v", err)
	}
	return p
}

func getStored(t *testing.T, name string) *store.Record {
	t.Helper()
	repo, err := openRepository()
	if err != nil {
		t.Fatalf("openRepository: %v", err)
	}
	defer func() { _ = repo.Close() }()
	rec, err := repo.GetTemplate(context.Background(), name)
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	return rec
}

func TestTemplateAdd_FromFileThenRender(t *testing.T) {
	setupHome(t)
	if err := user.SetProfile(user.Profile{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}

	out, err := execute(t, localCommand(templateAddCmd, addTemplateFlags), "lib", "--from-file", writeBody(t, storedBody), "-d", "library release")
	if err != nil {
		t.Fatalf("template add: %v", err)
	}
	if !strings.Contains(out, "saved 'lib'") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = execute(t, localCommand(listCmd, func(c *cobra.Command) { c.Flags().String("filter", "", "") }))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "- lib") || !strings.Contains(out, "library release") {
		t.Fatalf("stored template not listed:\n%s", out)
	}

	out, err = execute(t, newRenderCmd(), "lib", "--branch", "main")
	if err != nil {
		t.Fatalf("render stored template: %v", err)
	}
	if !strings.Contains(out, `"main"`) {
		t.Fatalf("unexpected render output:\n%s", out)
	}

	out, err = execute(t, localCommand(templateHistoryCmd, nil), "lib")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "v1") || !strings.Contains(out, "create") || !strings.Contains(out, "Ana <ana@example.com>") {
		t.Fatalf("unexpected history:\n%s", out)
	}
}

func TestTemplateAdd_Rejects(t *testing.T) {
	setupHome(t)
	_, err := execute(t, localCommand(templateAddCmd, addTemplateFlags), "automatic-release", "--from-file", writeBody(t, storedBody))
	if !errors.Is(err, store.ErrReservedName) {
		t.Fatalf("expected reserved name error, got %v", err)
	}
	_, err = execute(t, localCommand(templateAddCmd, addTemplateFlags), "broken", "--from-file", writeBody(t, `{"branches": ££branches££}`))
	if !errors.Is(err, template.ErrMalformedTemplate) {
		t.Fatalf("expected malformed template error, got %v", err)
	}
	if getStored(t, "broken") != nil {
		t.Fatalf("malformed template should not be saved")
	}
}

func TestTemplateAdd_UsesEditorWithoutFile(t *testing.T) {
	setupHome(t)
	var initial string
	editText = func(in, pattern string) (string, error) {
		initial = in
		if pattern != "from-editor.json" {
			t.Errorf("unexpected temp file name %q", pattern)
		}
		return storedBody, nil
	}
	if _, err := execute(t, localCommand(templateAddCmd, addTemplateFlags), "from-editor"); err != nil {
		t.Fatalf("template add: %v", err)
	}
	if !strings.Contains(initial, "££BRANCHES££") {
		t.Fatalf("editor should start from the starter body, got %q", initial)
	}
	if rec := getStored(t, "from-editor"); rec == nil || rec.Body != storedBody {
		t.Fatalf("unexpected stored record: %+v", rec)
	}
}

func TestTemplateEdit_HistoryAndRollback(t *testing.T) {
	setupHome(t)
	if _, err := execute(t, localCommand(templateAddCmd, addTemplateFlags), "svc", "--from-file", writeBody(t, storedBody)); err != nil {
		t.Fatalf("template add: %v", err)
	}

	edited := strings.Replace(storedBody, "@semantic-release/github", "@semantic-release/gitlab", 1)
	editText = func(in, _ string) (string, error) { return edited, nil }
	out, err := execute(t, localCommand(templateEditCmd, addTemplateFlags), "svc", "-d", "gitlab flavour")
	if err != nil {
		t.Fatalf("template edit: %v", err)
	}
	if !strings.Contains(out, "updated 'svc'") {
		t.Fatalf("unexpected edit output: %q", out)
	}
	rec := getStored(t, "svc")
	if rec.Body != edited || rec.Description.String != "gitlab flavour" {
		t.Fatalf("edit not applied: %+v", rec)
	}

	editText = func(in, _ string) (string, error) { return in, nil }
	out, err = execute(t, localCommand(templateEditCmd, addTemplateFlags), "svc")
	if err != nil {
		t.Fatalf("template edit: %v", err)
	}
	if !strings.Contains(out, "no changes") {
		t.Fatalf("expected no changes, got %q", out)
	}

	if _, err := execute(t, localCommand(templateRollbackCmd, nil), "svc", "1"); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if rec := getStored(t, "svc"); rec.Body != storedBody {
		t.Fatalf("rollback did not restore body: %q", rec.Body)
	}

	out, err = execute(t, localCommand(templateHistoryCmd, nil), "svc")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "v3") || !strings.Contains(lines[0], "rollback") {
		t.Fatalf("unexpected history:\n%s", out)
	}

	if _, err := execute(t, localCommand(templateRollbackCmd, nil), "svc", "zero"); err == nil {
		t.Fatalf("expected error for non-numeric version")
	}
	if _, err := execute(t, localCommand(templateRollbackCmd, nil), "svc", "9"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown version, got %v", err)
	}
}

func TestTemplateEdit_BuiltinIsReadOnly(t *testing.T) {
	setupHome(t)
	_, err := execute(t, localCommand(templateEditCmd, addTemplateFlags), "automatic-release")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTemplateDelete_Confirm(t *testing.T) {
	setupHome(t)
	addConfirm := func(c *cobra.Command) { c.Flags().Bool("confirm", false, "") }
	if _, err := execute(t, localCommand(templateAddCmd, addTemplateFlags), "gone", "--from-file", writeBody(t, storedBody)); err != nil {
		t.Fatalf("template add: %v", err)
	}

	confirm = func(string) (bool, error) { return false, nil }
	out, err := execute(t, localCommand(templateDeleteCmd, addConfirm), "gone", "--confirm")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "aborted") || getStored(t, "gone") == nil {
		t.Fatalf("expected template to survive an aborted delete")
	}

	confirm = func(string) (bool, error) { return true, nil }
	if _, err := execute(t, localCommand(templateDeleteCmd, addConfirm), "gone", "--confirm"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if getStored(t, "gone") != nil {
		t.Fatalf("expected template to be deleted")
	}

	if _, err := execute(t, localCommand(templateDeleteCmd, addConfirm), "gone"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
