package openlibrary

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type testHTTP struct {
	status int
	body   string
}

func (t testHTTP) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: t.status, Body: io.NopCloser(strings.NewReader(t.body)), Header: make(http.Header)}, nil
}

func TestFetchByISBN_Success(t *testing.T) {
	body := `{"ISBN:9783161484100": {
        "title": "A Sample Book",
        "publish_date": "March 2005",
        "authors": [{"name": "Jane Doe"}, {"name": "John Smith"}],
        "publishers": [{"name": "ACME Press"}]
    }}`
	old := client
	SetHTTPClient(testHTTP{status: 200, body: body})
	defer SetHTTPClient(old)

	r, err := FetchByISBN(context.Background(), "978-3-16-148410-0")
	if err != nil {
		t.Fatalf("FetchByISBN: %v", err)
	}
	if r == nil || r.Type != "book" {
		t.Fatalf("bad record: %+v", r)
	}
	for field, want := range map[string]string{
		"title":     "A Sample Book",
		"publisher": "ACME Press",
		"year":      "2005",
		"author":    "Jane Doe and John Smith",
		"isbn":      "9783161484100",
	} {
		if got, _ := r.Field(field); got != want {
			t.Fatalf("%s = %q, want %q", field, got, want)
		}
	}
}

func TestFetchByISBN_NoData(t *testing.T) {
	old := client
	SetHTTPClient(testHTTP{status: 200, body: `{}`})
	defer SetHTTPClient(old)

	r, err := FetchByISBN(context.Background(), "9783161484100")
	if err != nil || r != nil {
		t.Fatalf("expected nil, nil; got %v, %v", r, err)
	}
}

func TestNormalizeISBN(t *testing.T) {
	if got := NormalizeISBN(" 978-3-16-148410-0 "); got != "9783161484100" {
		t.Fatalf("normalize: %q", got)
	}
	if got := NormalizeISBN("0-8044-2957-X"); got != "080442957X" {
		t.Fatalf("normalize X: %q", got)
	}
}
