package ast

import (
	"sort"
	"strings"
)

// Edit replaces the source bytes in Span with Text.
type Edit struct {
	Span Span
	Text string
}

// Edits accumulates replacements on one source. An edit may contain earlier
// edits; its Text is expected to already include their effect, so contained
// edits are dropped when the set is applied.
type Edits struct {
	src   []byte
	edits []Edit
}

// NewEdits returns an empty edit set for src.
func NewEdits(src []byte) *Edits {
	return &Edits{src: src}
}

// Len returns the number of recorded edits.
func (e *Edits) Len() int {
	return len(e.edits)
}

// Replace records that span is replaced by text.
func (e *Edits) Replace(span Span, text string) {
	e.edits = append(e.edits, Edit{Span: span, Text: text})
}

// Text returns the source text of span with every edit that lies within it
// applied.
func (e *Edits) Text(span Span) string {
	return e.apply(span)
}

// Apply returns the whole source with all edits applied.
func (e *Edits) Apply() string {
	return e.apply(Span{Start: 0, End: len(e.src)})
}

// apply splices the outermost edits contained in within.
func (e *Edits) apply(within Span) string {
	var inner []Edit
	for _, ed := range e.edits {
		if ed.Span == within {
			return ed.Text
		}
		if within.Contains(ed.Span) {
			inner = append(inner, ed)
		}
	}
	sort.SliceStable(inner, func(i, j int) bool {
		if inner[i].Span.Start != inner[j].Span.Start {
			return inner[i].Span.Start < inner[j].Span.Start
		}
		return inner[i].Span.End > inner[j].Span.End
	})

	var b strings.Builder
	pos := within.Start
	for _, ed := range inner {
		if ed.Span.Start < pos {
			// Nested in an edit already written.
			continue
		}
		b.Write(e.src[pos:ed.Span.Start])
		b.WriteString(ed.Text)
		pos = ed.Span.End
	}
	b.Write(e.src[pos:within.End])
	return b.String()
}
