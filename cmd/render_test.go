package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/document"
	"github.com/VoxDroid/relcfg/internal/schema"
	"github.com/VoxDroid/relcfg/internal/template"
)

func newRenderCmd() *cobra.Command { return localCommand(renderCmd, addRenderFlags) }

func TestRenderCommand_StaticTemplateToStdout(t *testing.T) {
	setupHome(t)
	out, err := execute(t, newRenderCmd(), "automatic-release")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg, err := document.DecodeJSON([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(cfg.Branches) != 8 || cfg.Branches[1].Name != "main-built" {
		t.Fatalf("unexpected branches: %+v", cfg.Branches)
	}
	if cfg.TagFormat != `<%- version.replace("-built", "") %>` {
		t.Fatalf("tagFormat changed: %q", cfg.TagFormat)
	}
	if !strings.Contains(out, "<%-") {
		t.Fatalf("lodash marker escaped in output:\n%s", out)
	}
}

func TestRenderCommand_FlagsFillParameterisedTemplate(t *testing.T) {
	setupHome(t)
	out, err := execute(t, newRenderCmd(), "release-semantic-automated",
		"--branch", "main", "--branch", "next:prerelease=rc",
		"--main-file", "dist/app.js",
		"--file", "package.json", "--file", "dist/app.js")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg, err := document.DecodeJSON([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(cfg.Branches) != 2 || cfg.Branches[0].Name != "main" || cfg.Branches[1].PrereleaseID != "rc" {
		t.Fatalf("unexpected branches: %+v", cfg.Branches)
	}
	git, ok := cfg.Plugin("@semantic-release/git")
	if !ok {
		t.Fatalf("git plugin missing")
	}
	assets, _ := git.Options["assets"].([]any)
	if len(assets) != 2 || assets[0] != "package.json" || assets[1] != "dist/app.js" {
		t.Fatalf("unexpected assets: %v", git.Options["assets"])
	}
	if strings.Count(out, "dist/app.js") != 3 {
		t.Fatalf("expected MAIN_FILENAME twice plus one asset:\n%s", out)
	}
}

func TestRenderCommand_MissingParametersCarryHint(t *testing.T) {
	setupHome(t)
	_, err := execute(t, newRenderCmd(), "release-semantic-automated", "--main-file", "a.js")
	if !errors.Is(err, template.ErrMissingParameter) {
		t.Fatalf("expected missing parameter error, got %v", err)
	}
	var missing *template.MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingParameterError, got %T", err)
	}
	if strings.Join(missing.Names, ",") != "BRANCHES,FILES_TO_COMMIT" {
		t.Fatalf("unexpected missing names: %v", missing.Names)
	}
	hints := strings.Join(errors.GetAllHints(err), "\n")
	if !strings.Contains(hints, "relcfg tokens release-semantic-automated") {
		t.Fatalf("hint missing: %q", hints)
	}
}

func TestRenderCommand_UnknownTemplate(t *testing.T) {
	setupHome(t)
	_, err := execute(t, newRenderCmd(), "no-such-template")
	if !errors.Is(err, template.ErrUnknownTemplate) {
		t.Fatalf("expected unknown template error, got %v", err)
	}
	if len(errors.GetAllHints(err)) == 0 {
		t.Fatalf("expected a hint on unknown template")
	}
}

func TestRenderCommand_ParamsFileSetOverrideAndYAMLDir(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	paramsPath := filepath.Join(dir, "params.yaml")
	content := "BRANCHES:\n  - main\n  - name: beta\n    prerelease: true\nMAIN_FILENAME: src/old.php\nFILES_TO_COMMIT: [CHANGELOG.md]\n"
	if err := os.WriteFile(paramsPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write params: %v", err)
	}

	out, err := execute(t, newRenderCmd(), "release-semantic-automated",
		"-p", paramsPath, "--set", "MAIN_FILENAME=src/plugin.php", "-f", "yaml", "-o", dir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	target := filepath.Join(dir, ".releaserc.yaml")
	if !strings.Contains(out, target) {
		t.Fatalf("expected output path in %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	cfg, err := document.DecodeYAML(data)
	if err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, data)
	}
	if len(cfg.Branches) != 2 || !cfg.Branches[1].Prerelease {
		t.Fatalf("unexpected branches: %+v", cfg.Branches)
	}
	if strings.Contains(string(data), "src/old.php") || !strings.Contains(string(data), "src/plugin.php") {
		t.Fatalf("--set should override the parameter file:\n%s", data)
	}
}

func TestRenderCommand_FormatFromOutputName(t *testing.T) {
	setupHome(t)
	target := filepath.Join(t.TempDir(), "release.config.js")
	if _, err := execute(t, newRenderCmd(), "release-semantic-automated-npm", "-o", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "module.exports = ") {
		t.Fatalf("expected a CommonJS module, got:\n%s", data)
	}
	if _, err := document.DecodeJS(data); err != nil {
		t.Fatalf("decode js: %v", err)
	}
}

func TestRenderCommand_SettingsParamsAreDefaults(t *testing.T) {
	setupHome(t)
	settings.Params = map[string]any{
		"BRANCHES":        []any{"main"},
		"MAIN_FILENAME":   "index.js",
		"FILES_TO_COMMIT": []any{"index.js"},
	}
	out, err := execute(t, newRenderCmd(), "release-semantic-automated", "--branch", "trunk")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	cfg, err := document.DecodeJSON([]byte(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.Branches) != 1 || cfg.Branches[0].Name != "trunk" {
		t.Fatalf("flag should replace settings branches, got %+v", cfg.Branches)
	}
}

func TestRenderCommand_ValidationAndNoValidate(t *testing.T) {
	setupHome(t)
	args := []string{"release-semantic-automated", "--set", "BRANCHES=", "--main-file", "a.js", "--file", "a.js"}
	_, err := execute(t, newRenderCmd(), args...)
	if !errors.Is(err, schema.ErrInvalidDocument) {
		t.Fatalf("expected schema failure for empty branches, got %v", err)
	}

	out, err := execute(t, newRenderCmd(), append(args, "--no-validate")...)
	if err != nil {
		t.Fatalf("render with --no-validate: %v", err)
	}
	if !strings.Contains(out, `"branches": []`) {
		t.Fatalf("expected empty branches in output:\n%s", out)
	}
}

func TestRenderCommand_ScalarBreakingJSONFailsDecode(t *testing.T) {
	setupHome(t)
	_, err := execute(t, newRenderCmd(), "release-semantic-automated",
		"--branch", "main", "--main-file", `a"b.js`, "--file", "x")
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if len(errors.GetAllHints(err)) == 0 {
		t.Fatalf("expected a hint about quoting")
	}
}

func TestRenderCommand_InteractivePromptsForMissing(t *testing.T) {
	setupHome(t)
	var asked []string
	prompt = func(msg, _ string) (string, error) {
		asked = append(asked, msg)
		switch msg {
		case "BRANCHES:":
			return "main next:prerelease", nil
		case "FILES_TO_COMMIT:":
			return "package.json, dist/app.js", nil
		}
		return "unexpected", nil
	}
	out, err := execute(t, newRenderCmd(), "release-semantic-automated", "-i", "--main-file", "dist/app.js")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Join(asked, " ") != "BRANCHES: FILES_TO_COMMIT:" {
		t.Fatalf("unexpected prompts: %v", asked)
	}
	cfg, err := document.DecodeJSON([]byte(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cfg.Branches) != 2 || !cfg.Branches[1].Prerelease {
		t.Fatalf("unexpected branches: %+v", cfg.Branches)
	}
}

func TestRenderCommand_BuiltinDoesNotCreateStore(t *testing.T) {
	home := setupHome(t)
	if _, err := execute(t, newRenderCmd(), "automatic-release"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "templates.db")); !os.IsNotExist(err) {
		t.Fatalf("render of a built-in should not create the store, stat err = %v", err)
	}
}
