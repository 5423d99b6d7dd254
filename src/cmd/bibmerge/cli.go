package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"bibmerge/src/internal/schema"
)

// printNotifier writes user-visible outcomes to the command's streams.
type printNotifier struct {
	out io.Writer
	err io.Writer
}

func (n printNotifier) Notify(msg string) { _, _ = fmt.Fprintln(n.out, msg) }

func (n printNotifier) Error(msg string, err error) {
	_, _ = fmt.Fprintf(n.err, "%s: %v\n", msg, err)
}

// overlay builds the default merge decision: the candidate's type and fields
// win wherever present, the original keeps everything else. No field is
// cleared, so the candidate can only add or change values.
func overlay(original, candidate *schema.Record) *schema.Record {
	merged := original.Clone()
	merged.Type = candidate.Type
	for _, name := range candidate.FieldNames() {
		v, _ := candidate.Field(name)
		merged.SetField(name, v)
	}
	return merged
}

// autoReviewer approves the overlay decision without prompting (--yes).
type autoReviewer struct{}

func (autoReviewer) Review(original, candidate *schema.Record) (*schema.Record, bool) {
	return overlay(original, candidate), true
}

// promptReviewer previews the fetched changes and asks for confirmation on
// the terminal. The reader is shared across reviews: a fresh bufio.Reader
// per prompt would read ahead and drop the answers for later lookups.
type promptReviewer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptReviewer(in io.Reader, out io.Writer) promptReviewer {
	return promptReviewer{in: bufio.NewReader(in), out: out}
}

func (r promptReviewer) Review(original, candidate *schema.Record) (*schema.Record, bool) {
	merged := overlay(original, candidate)
	printPreview(r.out, original, merged)
	_, _ = fmt.Fprint(r.out, "apply these changes? [y/N] ")
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return nil, false
	}
	if strings.EqualFold(strings.TrimSpace(line), "y") {
		return merged, true
	}
	return nil, false
}

func printPreview(w io.Writer, original, merged *schema.Record) {
	if !schema.SameType(original.Type, merged.Type) {
		_, _ = fmt.Fprintf(w, "  type: %s -> %s\n", original.Type, merged.Type)
	}
	seen := map[string]bool{}
	var joint []string
	for _, n := range append(original.FieldNames(), merged.FieldNames()...) {
		if !seen[n] {
			seen[n] = true
			joint = append(joint, n)
		}
	}
	sort.Strings(joint)
	for _, name := range joint {
		oldVal, hadOld := original.Field(name)
		newVal, hasNew := merged.Field(name)
		switch {
		case hasNew && !hadOld:
			_, _ = fmt.Fprintf(w, "  + %s: %s\n", name, newVal)
		case hasNew && oldVal != newVal:
			_, _ = fmt.Fprintf(w, "  ~ %s: %s -> %s\n", name, oldVal, newVal)
		case !hasNew && hadOld:
			_, _ = fmt.Fprintf(w, "  - %s: %s\n", name, oldVal)
		}
	}
}
