package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/VoxDroid/relcfg/internal/document"
	"github.com/VoxDroid/relcfg/internal/params"
	"github.com/VoxDroid/relcfg/internal/schema"
	"github.com/VoxDroid/relcfg/internal/security"
	"github.com/VoxDroid/relcfg/internal/template"
)

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template into a release configuration",
	Long: "Render a template into a release configuration. Parameters are layered from the settings file,\n" +
		"a parameter file (-p) and flags, later layers winning. Example:\n" +
		"  relcfg render release-semantic-automated --branch main --branch next:prerelease=rc \\\n" +
		"    --main-file dist/app.js --file package.json --file dist/app.js -o .",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx := commandContext(cmd)

		reg, err := loadCatalog(ctx)
		if err != nil {
			return err
		}
		t, err := reg.Lookup(name)
		if err != nil {
			return withHints(err)
		}

		values, err := collectParameters(cmd)
		if err != nil {
			return err
		}
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if err := promptMissing(t, values); err != nil {
				return err
			}
		}
		logUnused(t, values)

		doc, err := template.NewRenderer(reg).Render(name, values)
		if err != nil {
			return withHints(err)
		}
		logger.Debug("rendered template", "template", doc.Template, "bytes", len(doc.Body))

		cfg, err := document.Decode(doc)
		if err != nil {
			return errors.WithHint(err, "a scalar parameter probably broke the JSON quoting of the template")
		}
		noValidate, _ := cmd.Flags().GetBool("no-validate")
		if settings.Validate && !noValidate {
			if err := schema.ValidateConfig(cfg); err != nil {
				return errors.WithHint(err, "pass --no-validate to write the document anyway")
			}
			if err := security.CheckConfig(cfg); err != nil {
				return errors.WithHint(err, "review the exec plugin steps of the template; pass --no-validate to write it anyway")
			}
		}

		output, _ := cmd.Flags().GetString("output")
		f, output, err := outputFormat(cmd, output)
		if err != nil {
			return err
		}
		out, err := document.Encode(cfg, f)
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", output)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", output, f)
		return nil
	},
}

// collectParameters merges settings defaults, the parameter file and flags.
func collectParameters(cmd *cobra.Command) (template.Parameters, error) {
	layers := []params.Layer{params.Layer(settings.Params)}
	if path, _ := cmd.Flags().GetString("params"); path != "" {
		l, err := params.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded parameter file", "path", path, "keys", len(l))
		layers = append(layers, l)
	}
	fl, err := flagLayer(cmd)
	if err != nil {
		return nil, err
	}
	layers = append(layers, fl)

	merged, err := params.Merge(layers...)
	if err != nil {
		return nil, err
	}
	return params.Convert(merged)
}

func flagLayer(cmd *cobra.Command) (params.Layer, error) {
	l := params.Layer{}
	if sets, _ := cmd.Flags().GetStringArray("set"); len(sets) > 0 {
		for _, s := range sets {
			k, v, err := params.ParseAssignment(s)
			if err != nil {
				return nil, err
			}
			l[k] = v
		}
	}
	if specs, _ := cmd.Flags().GetStringArray("branch"); len(specs) > 0 {
		var bs template.Branches
		for _, s := range specs {
			parsed, err := params.ParseBranchList(s)
			if err != nil {
				return nil, err
			}
			bs = append(bs, parsed...)
		}
		l[template.TokenBranches] = bs
	}
	if cmd.Flags().Changed("main-file") {
		v, _ := cmd.Flags().GetString("main-file")
		l[template.TokenMainFilename] = v
	}
	if files, _ := cmd.Flags().GetStringArray("file"); len(files) > 0 {
		l[template.TokenFilesToCommit] = files
	}
	return l, nil
}

// promptMissing asks for every token of t that values does not cover.
func promptMissing(t template.Template, values template.Parameters) error {
	names, err := t.Tokens()
	if err != nil {
		return err
	}
	for _, name := range names {
		if values[name] != nil {
			continue
		}
		answer, err := prompt(fmt.Sprintf("%s:", name), promptHelp(name))
		if err != nil {
			return errors.Wrapf(err, "prompt for %s", name)
		}
		switch name {
		case template.TokenBranches:
			bs, err := params.ParseBranchList(answer)
			if err != nil {
				return err
			}
			values[name] = bs
		case template.TokenFilesToCommit:
			var files template.Strings
			for _, f := range strings.Split(answer, ",") {
				if f = strings.TrimSpace(f); f != "" {
					files = append(files, f)
				}
			}
			values[name] = files
		default:
			values[name] = template.String(answer)
		}
	}
	return nil
}

func promptHelp(name string) string {
	switch name {
	case template.TokenBranches:
		return "space separated branches, e.g. main next:prerelease=rc"
	case template.TokenMainFilename:
		return "path of the main build artifact, e.g. dist/app.js"
	case template.TokenFilesToCommit:
		return "comma separated files committed with the release"
	}
	return ""
}

func logUnused(t template.Template, values template.Parameters) {
	names, err := t.Tokens()
	if err != nil {
		return
	}
	used := make(map[string]bool, len(names))
	for _, n := range names {
		used[n] = true
	}
	for k := range values {
		if !used[k] {
			logger.Debug("ignoring unused parameter", "template", t.Name, "parameter", k)
		}
	}
}

// outputFormat picks the format from --format, then the output file name, then
// the settings file. An output directory gets the conventional file name.
func outputFormat(cmd *cobra.Command, output string) (document.Format, string, error) {
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		f, err := document.ParseFormat(v)
		if err != nil {
			return "", "", err
		}
		return f, resolveOutput(output, f), nil
	}
	if output != "" && output != "-" {
		if fi, err := os.Stat(output); err != nil || !fi.IsDir() {
			if f, err := document.FormatFromPath(output); err == nil {
				return f, output, nil
			}
		}
	}
	f, err := document.ParseFormat(settings.Format)
	if err != nil {
		return "", "", errors.Wrap(err, "settings format")
	}
	return f, resolveOutput(output, f), nil
}

func resolveOutput(output string, f document.Format) string {
	if output == "" || output == "-" {
		return output
	}
	if fi, err := os.Stat(output); err == nil && fi.IsDir() {
		return filepath.Join(output, document.DefaultFilename(f))
	}
	return output
}

func addRenderFlags(c *cobra.Command) {
	c.Flags().StringP("params", "p", "", "YAML or JSON parameter file")
	c.Flags().StringArray("branch", nil, "Release branch, e.g. main or next:prerelease=rc (repeatable)")
	c.Flags().String("main-file", "", "Value for MAIN_FILENAME")
	c.Flags().StringArray("file", nil, "File committed with the release, FILES_TO_COMMIT (repeatable)")
	c.Flags().StringArray("set", nil, "Set a parameter, NAME=value (repeatable)")
	c.Flags().StringP("format", "f", "json", "Output format: json, yaml or js")
	c.Flags().StringP("output", "o", "", "Output file or directory (default stdout)")
	c.Flags().BoolP("interactive", "i", false, "Prompt for parameters that were not supplied")
	c.Flags().Bool("no-validate", false, "Skip schema validation")
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}
