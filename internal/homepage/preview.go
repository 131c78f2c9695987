// Package homepage fetches a formula's homepage and extracts page metadata.
package homepage

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "brew-parser/1.0 (https://github.com/bluby/brew-parser)"
	timeout   = 10 * time.Second
)

// Preview holds metadata extracted from a formula's homepage.
type Preview struct {
	Title       string
	Description string
}

// Fetcher retrieves homepage previews.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a new Fetcher instance.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads the page at url and extracts its HTML title and meta
// description. Either field may be empty if the page doesn't provide it.
func (f *Fetcher) Fetch(url string) (*Preview, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	preview := &Preview{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		preview.Description = strings.TrimSpace(desc)
	}

	return preview, nil
}
