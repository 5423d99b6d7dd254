// Package doi resolves DOIs through doi.org content negotiation (CSL JSON).
package doi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bibmerge/src/internal/httpx"
	"bibmerge/src/internal/names"
	"bibmerge/src/internal/schema"
)

var client httpx.Doer = httpx.NewClient()

// SetHTTPClient allows tests to inject a fake HTTP client.
func SetHTTPClient(c httpx.Doer) { client = c }

// Provider adapts DOI resolution to the fetch orchestrator's contract.
type Provider struct{}

func (Provider) Name() string { return "DOI" }

func (Provider) SearchByID(ctx context.Context, id string) (*schema.Record, error) {
	return FetchByDOI(ctx, id)
}

// CSL is the subset of a CSL-JSON item the mapping needs.
type CSL struct {
	Title          any         `json:"title"`
	ContainerTitle any         `json:"container-title"`
	Author         []CSLAuthor `json:"author"`
	Issued         CSLIssued   `json:"issued"`
	DOI            string      `json:"DOI"`
	Volume         string      `json:"volume"`
	Issue          string      `json:"issue"`
	Page           string      `json:"page"`
	Publisher      string      `json:"publisher"`
}

type CSLAuthor struct {
	Family string `json:"family"`
	Given  string `json:"given"`
}

type CSLIssued struct {
	DateParts [][]int `json:"date-parts"`
}

// FetchByDOI resolves a DOI to an article record. A 404 from doi.org means
// the identifier is unknown and returns (nil, nil).
func FetchByDOI(ctx context.Context, doi string) (*schema.Record, error) {
	u := "https://doi.org/" + strings.TrimSpace(doi)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.citationstyles.csl+json")
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("doi: http %d: %s", resp.StatusCode, string(b))
	}
	var csl CSL
	if err := json.NewDecoder(resp.Body).Decode(&csl); err != nil {
		return nil, err
	}
	return mapCSLToRecord(csl), nil
}

func mapCSLToRecord(c CSL) *schema.Record {
	r := schema.NewRecord("article")
	r.SetField("title", toString(c.Title))
	r.SetField("journal", toString(c.ContainerTitle))
	if y := issuedYear(c.Issued); y > 0 {
		r.SetField("year", fmt.Sprintf("%d", y))
	}
	r.SetField("volume", c.Volume)
	r.SetField("number", c.Issue)
	r.SetField("pages", c.Page)
	r.SetField("publisher", c.Publisher)
	r.SetField(schema.FieldDOI, strings.TrimSpace(c.DOI))
	var authors []string
	for _, a := range c.Author {
		if strings.TrimSpace(a.Family) == "" {
			continue
		}
		authors = append(authors, names.Display(a.Family, a.Given))
	}
	r.SetField("author", names.Join(authors))
	return r
}

func issuedYear(i CSLIssued) int {
	if len(i.DateParts) == 0 || len(i.DateParts[0]) == 0 {
		return 0
	}
	return i.DateParts[0][0]
}

// toString coerces a string or first element of an array to a string.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
