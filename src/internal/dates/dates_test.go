package dates

import "testing"

func TestYearFromDate(t *testing.T) {
	if y := YearFromDate("2021-01-01T00:00:00Z"); y != 2021 {
		t.Fatalf("year: %d", y)
	}
	if y := YearFromDate("abc"); y != 0 {
		t.Fatalf("garbage year: %d", y)
	}
}

func TestExtractYear(t *testing.T) {
	if y := ExtractYear("March 2005"); y != 2005 {
		t.Fatalf("year: %d", y)
	}
	if y := ExtractYear("no year here"); y != 0 {
		t.Fatalf("garbage year: %d", y)
	}
}
