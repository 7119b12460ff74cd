// Package difflib renders unified diffs of generated site files using
// github.com/pmezard/go-difflib.
package difflib

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines around each hunk.
const DefaultContext = 3

// Unified returns a unified diff turning before into after, labelled with
// name. It returns "" when the contents are equal. A nil before is shown as
// a new file.
func Unified(name string, before, after []byte) (string, error) {
	from := "a/" + name
	if before == nil {
		from = "/dev/null"
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(string(before)),
		B:        splitLines(string(after)),
		FromFile: from,
		ToFile:   "b/" + name,
		Context:  DefaultContext,
	})
}

// splitLines keeps the newline on each line and terminates the last line so
// a missing final newline does not glue hunks together.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if last := lines[len(lines)-1]; last == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] = last + "\n"
	}
	return lines
}
