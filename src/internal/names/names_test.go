package names

import "testing"

func TestJoin(t *testing.T) {
	if got := Join([]string{"Jane Doe", " ", "John Smith"}); got != "Jane Doe and John Smith" {
		t.Fatalf("join: %q", got)
	}
	if got := Join(nil); got != "" {
		t.Fatalf("empty join: %q", got)
	}
}

func TestDisplay(t *testing.T) {
	if got := Display("Doe", "Jane"); got != "Doe, Jane" {
		t.Fatalf("display: %q", got)
	}
	if got := Display("ACME Corp", ""); got != "ACME Corp" {
		t.Fatalf("corporate: %q", got)
	}
	if got := Display("", "Jane"); got != "Jane" {
		t.Fatalf("given only: %q", got)
	}
}
