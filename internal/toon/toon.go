// Package toon implements TOON (Token-Oriented Object Notation) encoding of
// run reports.
package toon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/phobologic/argwrap/internal/model"
)

var (
	needsQuoting = regexp.MustCompile(`[,:"\\{}\[\]]`)
	looksNumeric = regexp.MustCompile(`^-?(?:0|[1-9]\d*)(?:\.\d+)?$`)
	keywords     = map[string]struct{}{
		"true":  {},
		"false": {},
		"null":  {},
	}
)

// File statuses.
const (
	StatusChanged   = "changed"
	StatusUnchanged = "unchanged"
	StatusError     = "error"
)

// Encode converts a Report into TOON format.
func Encode(r *model.Report) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(r.Root)))

	var fileRows, changeRows, errorRows [][]string
	for i := range r.Files {
		f := &r.Files[i]
		fileRows = append(fileRows, []string{
			f.Path,
			status(f),
			fmt.Sprintf("%d", len(f.Changes)),
		})
		for j := range f.Changes {
			c := &f.Changes[j]
			changeRows = append(changeRows, []string{
				f.Path,
				fmt.Sprintf("%d", c.Line),
				string(c.Rule),
				string(c.Kind),
				c.Callee,
				fmt.Sprintf("%d", c.Arguments),
			})
		}
		if f.Err != nil {
			errorRows = append(errorRows, []string{f.Path, f.Err.Error()})
		}
	}
	parts = append(parts, formatTabular("files", []string{"path", "status", "changes"}, fileRows))
	parts = append(parts, formatTabular("changes", []string{"file", "line", "rule", "kind", "callee", "arguments"}, changeRows))

	if len(errorRows) > 0 {
		parts = append(parts, formatTabular("errors", []string{"file", "error"}, errorRows))
	}

	return strings.Join(parts, "\n")
}

func status(f *model.FileResult) string {
	switch {
	case f.Err != nil:
		return StatusError
	case f.Changed():
		return StatusChanged
	}
	return StatusUnchanged
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}

func encodeValue(value string) string {
	if value == "" {
		return `""`
	}

	if value != strings.TrimSpace(value) {
		return quote(value)
	}

	if strings.ContainsAny(value, "\n\r\t") {
		return quote(value)
	}

	if _, ok := keywords[strings.ToLower(value)]; ok {
		return quote(value)
	}

	if looksNumeric.MatchString(value) {
		return value
	}

	if needsQuoting.MatchString(value) {
		return quote(value)
	}

	if strings.HasPrefix(value, "-") {
		return quote(value)
	}

	return value
}

func quote(value string) string {
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	escaped = strings.ReplaceAll(escaped, "\r", `\r`)
	escaped = strings.ReplaceAll(escaped, "\t", `\t`)
	return `"` + escaped + `"`
}
