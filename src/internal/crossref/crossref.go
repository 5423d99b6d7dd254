// Package crossref searches the Crossref works API for records matching a
// whole bibliographic entry.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bibmerge/src/internal/httpx"
	"bibmerge/src/internal/names"
	"bibmerge/src/internal/schema"
)

var client httpx.Doer = httpx.NewClient()

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// maxRows bounds how many candidates one search requests.
const maxRows = 5

// Provider is the entry-based search collaborator for the fetch orchestrator.
type Provider struct{}

func (Provider) Name() string { return "Crossref" }

type workItem struct {
	Title          []string `json:"title"`
	ContainerTitle []string `json:"container-title"`
	Author         []struct {
		Family string `json:"family"`
		Given  string `json:"given"`
	} `json:"author"`
	Issued struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	DOI       string `json:"DOI"`
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	Page      string `json:"page"`
	Publisher string `json:"publisher"`
}

type worksResponse struct {
	Message struct {
		Items []workItem `json:"items"`
	} `json:"message"`
}

// Search queries Crossref with the record's title and author and returns the
// mapped candidates in API relevance order. A record without a title cannot
// be searched and yields no results.
func (Provider) Search(ctx context.Context, rec *schema.Record) ([]*schema.Record, error) {
	title, ok := rec.Field("title")
	if !ok {
		return nil, nil
	}
	q := url.Values{}
	q.Set("query.bibliographic", title)
	if author, ok := rec.Field("author"); ok {
		q.Set("query.author", author)
	}
	q.Set("rows", strconv.Itoa(maxRows))
	endpoint := "https://api.crossref.org/works?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("crossref: http %d: %s", resp.StatusCode, string(b))
	}
	var works worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&works); err != nil {
		return nil, err
	}
	var out []*schema.Record
	for _, item := range works.Message.Items {
		out = append(out, mapWorkToRecord(item))
	}
	return out, nil
}

func mapWorkToRecord(item workItem) *schema.Record {
	r := schema.NewRecord("article")
	if len(item.Title) > 0 {
		r.SetField("title", item.Title[0])
	}
	if len(item.ContainerTitle) > 0 {
		r.SetField("journal", item.ContainerTitle[0])
	}
	var authors []string
	for _, a := range item.Author {
		if strings.TrimSpace(a.Family) == "" {
			continue
		}
		authors = append(authors, names.Display(a.Family, a.Given))
	}
	r.SetField("author", names.Join(authors))
	if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
		r.SetField("year", strconv.Itoa(item.Issued.DateParts[0][0]))
	}
	r.SetField("volume", item.Volume)
	r.SetField("number", item.Issue)
	r.SetField("pages", item.Page)
	r.SetField("publisher", item.Publisher)
	r.SetField(schema.FieldDOI, strings.TrimSpace(item.DOI))
	return r
}
