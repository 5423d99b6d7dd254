package doi

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

func TestFetchByDOI_Success(t *testing.T) {
	csl := `{
        "title": "A Sample Article",
        "author": [{"family":"Doe","given":"Jane"},{"family":"Smith","given":"John"}],
        "container-title": "Journal of Things",
        "issued": {"date-parts": [[2023,7,14]]},
        "DOI": "10.1234/sample",
        "volume": "10",
        "issue": "2",
        "page": "10-20",
        "publisher": "ACME"
    }`
	old := client
	SetHTTPClient(testHTTP{status: 200, body: csl})
	defer SetHTTPClient(old)

	r, err := FetchByDOI(context.Background(), "10.1234/sample")
	if err != nil {
		t.Fatalf("FetchByDOI: %v", err)
	}
	if r == nil || r.Type != "article" {
		t.Fatalf("bad record: %+v", r)
	}
	for field, want := range map[string]string{
		"title":   "A Sample Article",
		"journal": "Journal of Things",
		"year":    "2023",
		"volume":  "10",
		"number":  "2",
		"pages":   "10-20",
		"doi":     "10.1234/sample",
		"author":  "Doe, Jane and Smith, John",
	} {
		if got, _ := r.Field(field); got != want {
			t.Fatalf("%s = %q, want %q", field, got, want)
		}
	}
}

func TestFetchByDOI_NotFound(t *testing.T) {
	old := client
	SetHTTPClient(testHTTP{status: 404, body: "not found"})
	defer SetHTTPClient(old)

	r, err := FetchByDOI(context.Background(), "10.9999/none")
	if err != nil || r != nil {
		t.Fatalf("expected nil, nil; got %v, %v", r, err)
	}
}

func TestFetchByDOI_ServerError(t *testing.T) {
	old := client
	SetHTTPClient(testHTTP{status: 500, body: "oops"})
	defer SetHTTPClient(old)

	if _, err := FetchByDOI(context.Background(), "10.1/x"); err == nil {
		t.Fatalf("expected error")
	}
}
