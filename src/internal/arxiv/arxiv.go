// Package arxiv looks up preprints by eprint identifier through the arXiv
// Atom API.
package arxiv

import (
	"context"
	"encoding/xml"
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

// Provider adapts eprint lookup to the fetch orchestrator's contract.
type Provider struct{}

func (Provider) Name() string { return "arXiv" }

func (Provider) SearchByID(ctx context.Context, id string) (*schema.Record, error) {
	return FetchByEprint(ctx, id)
}

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

// FetchByEprint resolves an arXiv id (e.g. 2101.00001) to an article record.
// An unknown id yields a feed without usable entries and returns (nil, nil).
func FetchByEprint(ctx context.Context, eprint string) (*schema.Record, error) {
	id := strings.TrimSpace(strings.TrimPrefix(eprint, "arXiv:"))
	q := url.Values{}
	q.Set("id_list", id)
	q.Set("max_results", "1")
	endpoint := "https://export.arxiv.org/api/query?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("arxiv: http %d: %s", resp.StatusCode, string(b))
	}
	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	if len(feed.Entries) == 0 {
		return nil, nil
	}
	entry := feed.Entries[0]
	// The API reports bad ids as an entry without an arXiv abs link.
	if !strings.Contains(entry.ID, "/abs/") {
		return nil, nil
	}
	return mapEntryToRecord(entry, id), nil
}

func mapEntryToRecord(entry atomEntry, id string) *schema.Record {
	r := schema.NewRecord("article")
	r.SetField("title", strings.Join(strings.Fields(entry.Title), " "))
	var authors []string
	for _, a := range entry.Authors {
		authors = append(authors, a.Name)
	}
	r.SetField("author", names.Join(authors))
	if y := dates.YearFromDate(entry.Published); y > 0 {
		r.SetField("year", fmt.Sprintf("%d", y))
	}
	r.SetField(schema.FieldEprint, id)
	r.SetField("eprinttype", "arXiv")
	r.SetField("url", strings.TrimSpace(entry.ID))
	return r
}
