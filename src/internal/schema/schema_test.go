package schema

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFieldAccessors(t *testing.T) {
	r := NewRecord("article")
	r.SetField("title", "A")
	r.SetField("doi", "10.1/x")

	if v, ok := r.Field("title"); !ok || v != "A" {
		t.Fatalf("title: %q %v", v, ok)
	}
	if r.HasField("year") {
		t.Fatalf("year should be unset")
	}

	r.SetField("title", "")
	if r.HasField("title") {
		t.Fatalf("empty set should clear")
	}

	r.ClearField("doi")
	if len(r.FieldNames()) != 0 {
		t.Fatalf("names: %v", r.FieldNames())
	}
}

func TestFieldNamesSorted(t *testing.T) {
	r := NewRecord("article")
	for _, n := range []string{"zeta", "alpha", "mid"} {
		r.SetField(n, "v")
	}
	if got := r.FieldNames(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Fatalf("names: %v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := NewRecord("article")
	r.ID = "x"
	r.SetField("title", "A")
	c := r.Clone()
	c.SetField("title", "B")
	if v, _ := r.Field("title"); v != "A" {
		t.Fatalf("clone aliases fields")
	}
	if c.ID != "x" {
		t.Fatalf("clone lost id")
	}
}

func TestSameType(t *testing.T) {
	if !SameType("Article", "article") {
		t.Fatalf("case-insensitive compare failed")
	}
	if SameType("article", "book") {
		t.Fatalf("distinct types compared equal")
	}
}

func TestIsInternalField(t *testing.T) {
	for _, name := range []string{"__mark", "__search", "owner", "timestamp", "groups"} {
		if !IsInternalField(name) {
			t.Fatalf("%s should be internal", name)
		}
	}
	for _, name := range []string{"title", "doi", "year"} {
		if IsInternalField(name) {
			t.Fatalf("%s should not be internal", name)
		}
	}
}

func TestSupportedFields(t *testing.T) {
	if got := SupportedFields(); !reflect.DeepEqual(got, []string{"doi", "eprint", "isbn"}) {
		t.Fatalf("supported: %v", got)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	r := NewRecord("article")
	r.ID = "doe2020"
	r.SetField("title", "A Title")
	r.SetField("doi", "10.1/x")

	b, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Record
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != "doe2020" || back.Type != "article" || !back.EqualFields(r) {
		t.Fatalf("round trip: %+v", back)
	}
}

func TestUnmarshalDropsBlankValues(t *testing.T) {
	var r Record
	doc := "id: x\ntype: article\nfields:\n  title: A\n  note: \"  \"\n"
	if err := yaml.Unmarshal([]byte(doc), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.HasField("note") {
		t.Fatalf("blank field survived")
	}
}

func TestValidate(t *testing.T) {
	r := NewRecord("article")
	if err := r.Validate(); err == nil {
		t.Fatalf("missing id accepted")
	}
	r.ID = "x"
	r.Type = ""
	if err := r.Validate(); err == nil {
		t.Fatalf("missing type accepted")
	}
	r.Type = "article"
	if err := r.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
}
