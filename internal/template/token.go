package template

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker delimits a placeholder token on both sides, e.g. ££BRANCHES££.
const Marker = "££"

// Token names used by the built-in templates.
const (
	TokenBranches      = "BRANCHES"
	TokenMainFilename  = "MAIN_FILENAME"
	TokenFilesToCommit = "FILES_TO_COMMIT"
)

var tokenNameRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// tokenRef is one occurrence of a token in a body. Start and End are byte
// offsets covering both markers.
type tokenRef struct {
	Name  string
	Start int
	End   int
}

// scan walks body left to right pairing markers. Any marker that cannot be
// paired into a well-formed name fails the whole scan.
func scan(body string) ([]tokenRef, error) {
	var refs []tokenRef
	pos := 0
	for {
		idx := strings.Index(body[pos:], Marker)
		if idx < 0 {
			return refs, nil
		}
		start := pos + idx
		open := start + len(Marker)
		closeIdx := strings.Index(body[open:], Marker)
		if closeIdx < 0 {
			return nil, &MalformedTemplateError{Offset: start, Reason: "unterminated marker"}
		}
		name := body[open : open+closeIdx]
		if name == "" {
			return nil, &MalformedTemplateError{Offset: start, Reason: "empty token name"}
		}
		if !tokenNameRe.MatchString(name) {
			return nil, &MalformedTemplateError{Offset: start, Reason: "invalid token name " + quoteName(name)}
		}
		end := open + closeIdx + len(Marker)
		refs = append(refs, tokenRef{Name: name, Start: start, End: end})
		pos = end
	}
}

// Tokens returns the unique token names referenced in body, in order of first
// appearance.
func Tokens(body string) ([]string, error) {
	refs, err := scan(body)
	if err != nil {
		return nil, err
	}
	return uniqueNames(refs), nil
}

func uniqueNames(refs []tokenRef) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range refs {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r.Name)
	}
	return out
}

func quoteName(name string) string {
	const limit = 32
	if r := []rune(name); len(r) > limit {
		name = string(r[:limit]) + "..."
	}
	return strconv.Quote(name)
}
