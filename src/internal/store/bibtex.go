package store

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"bibmerge/src/internal/schema"
)

// ExportBibTeX renders records as a consolidated BibTeX document. Entries are
// ordered by type then id, fields lexicographically; internal fields are not
// exported.
func ExportBibTeX(recs []*schema.Record) string {
	sorted := append([]*schema.Record(nil), recs...)
	sort.Slice(sorted, func(i, j int) bool {
		if !strings.EqualFold(sorted[i].Type, sorted[j].Type) {
			return strings.ToLower(sorted[i].Type) < strings.ToLower(sorted[j].Type)
		}
		return sorted[i].ID < sorted[j].ID
	})
	var buf bytes.Buffer
	for i, r := range sorted {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(recordToBibTeX(r))
	}
	return buf.String()
}

func recordToBibTeX(r *schema.Record) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "@%s{%s,\n", strings.ToLower(r.Type), r.ID)
	for _, name := range r.FieldNames() {
		if schema.IsInternalField(name) {
			continue
		}
		v, _ := r.Field(name)
		fmt.Fprintf(&buf, "  %s = {%s},\n", name, escapeBibTeX(v))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func escapeBibTeX(s string) string {
	s = strings.ReplaceAll(s, "{", "\\{")
	s = strings.ReplaceAll(s, "}", "\\}")
	return s
}
