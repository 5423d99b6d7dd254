// Package openlibrary looks up books by ISBN through the OpenLibrary API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bibmerge/src/internal/dates"
	"bibmerge/src/internal/httpx"
	"bibmerge/src/internal/names"
	"bibmerge/src/internal/schema"
)

var client httpx.Doer = httpx.NewClient()

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// Provider adapts ISBN lookup to the fetch orchestrator's contract.
type Provider struct{}

func (Provider) Name() string { return "ISBN" }

func (Provider) SearchByID(ctx context.Context, id string) (*schema.Record, error) {
	return FetchByISBN(ctx, id)
}

type olData struct {
	Title       string                  `json:"title"`
	PublishDate string                  `json:"publish_date"`
	Authors     []struct{ Name string } `json:"authors"`
	Publishers  []struct{ Name string } `json:"publishers"`
}

// FetchByISBN queries OpenLibrary and maps the response to a book record.
// An ISBN the service does not know returns (nil, nil).
func FetchByISBN(ctx context.Context, isbn string) (*schema.Record, error) {
	norm := NormalizeISBN(isbn)
	req := buildRequest(ctx, norm)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openlibrary: http %d: %s", resp.StatusCode, string(b))
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	dataRaw, ok := raw["ISBN:"+norm]
	if !ok || len(dataRaw) == 0 {
		return nil, nil
	}
	var data olData
	if err := json.Unmarshal(dataRaw, &data); err != nil {
		return nil, err
	}
	return mapToRecord(data, norm), nil
}

func buildRequest(ctx context.Context, norm string) *http.Request {
	q := url.Values{}
	q.Set("bibkeys", "ISBN:"+norm)
	q.Set("format", "json")
	q.Set("jscmd", "data")
	endpoint := "https://openlibrary.org/api/books?" + q.Encode()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)
	return req
}

func mapToRecord(data olData, norm string) *schema.Record {
	r := schema.NewRecord("book")
	r.SetField("title", data.Title)
	if len(data.Publishers) > 0 {
		r.SetField("publisher", data.Publishers[0].Name)
	}
	if y := dates.ExtractYear(data.PublishDate); y > 0 {
		r.SetField("year", fmt.Sprintf("%d", y))
	}
	var authors []string
	for _, a := range data.Authors {
		authors = append(authors, a.Name)
	}
	r.SetField("author", names.Join(authors))
	r.SetField(schema.FieldISBN, norm)
	return r
}

// NormalizeISBN strips separators and whitespace from an ISBN.
func NormalizeISBN(isbn string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= '0' && c <= '9', c == 'X', c == 'x':
			return c
		default:
			return -1
		}
	}, strings.TrimSpace(isbn))
}
