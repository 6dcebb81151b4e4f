package document

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is an output syntax understood by semantic-release.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	JS   Format = "js"
)

// Formats lists the supported formats in display order.
var Formats = []Format{JSON, YAML, JS}

// ParseFormat accepts json, yaml/yml and js.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "js", "javascript":
		return JS, nil
	}
	return "", errors.WithHint(errors.Newf("unsupported format %q", s), "use one of: json, yaml, js")
}

// DefaultFilename is the file name semantic-release looks for in each format.
func DefaultFilename(f Format) string {
	switch f {
	case YAML:
		return ".releaserc.yaml"
	case JS:
		return "release.config.js"
	default:
		return ".releaserc.json"
	}
}

// FormatFromPath infers the format from a file name.
func FormatFromPath(path string) (Format, error) {
	base := filepath.Base(path)
	if base == ".releaserc" {
		return JSON, nil
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".js", ".cjs":
		return JS, nil
	}
	return "", errors.Newf("cannot infer format from %q", path)
}
