package scraper

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"

	"github.com/mai-repo/Newscraper/internal/domain"
)

// Selectors are goquery selectors. Headline, Summary and Link are evaluated
// inside each Container match; only the first match of each is used.
type Selectors struct {
	Container string
	Headline  string
	Summary   string
	Link      string
}

// DefaultSelectors match the listing markup of the default target.
func DefaultSelectors() Selectors {
	return Selectors{
		Container: "article",
		Headline:  "h2",
		Summary:   "p",
		Link:      "a",
	}
}

// Extractor pulls headline, summary and link lists out of listing markup.
type Extractor struct {
	sel Selectors
}

// NewExtractor returns an Extractor. Empty selectors fall back to DefaultSelectors.
func NewExtractor(sel Selectors) *Extractor {
	def := DefaultSelectors()
	if sel.Container == "" {
		sel.Container = def.Container
	}
	if sel.Headline == "" {
		sel.Headline = def.Headline
	}
	if sel.Summary == "" {
		sel.Summary = def.Summary
	}
	if sel.Link == "" {
		sel.Link = def.Link
	}
	return &Extractor{sel: sel}
}

// Extract walks every container in document order. The first headline,
// summary and link found in a container are each appended to their own list;
// a container that lacks one simply contributes nothing to that list.
// Summaries and links are then padded with "" or cut to the number of
// headlines, so all three lists always have equal length.
//
// Because the lists are built independently, a container with a headline but
// no summary shifts every later summary one slot earlier. Callers get the
// lists exactly as the page yields them. Text is not trimmed.
func (e *Extractor) Extract(markup []byte) (headlines, summaries, links []string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, nil, nil, &domain.ParseError{Err: err}
	}

	headlines, summaries, links = []string{}, []string{}, []string{}

	doc.Find(e.sel.Container).Each(func(_ int, container *goquery.Selection) {
		if h := container.Find(e.sel.Headline).First(); h.Length() > 0 {
			headlines = append(headlines, h.Text())
		}
		if p := container.Find(e.sel.Summary).First(); p.Length() > 0 {
			summaries = append(summaries, p.Text())
		}
		// Only the first link counts; without an href it contributes nothing.
		if href := container.Find(e.sel.Link).First().AttrOr("href", ""); href != "" {
			links = append(links, href)
		}
	})

	n := len(headlines)
	return headlines, fitLength(summaries, n), fitLength(links, n), nil
}

// ExtractArticles is Extract followed by domain.ZipArticles.
func (e *Extractor) ExtractArticles(markup []byte) ([]domain.ExtractedArticle, error) {
	headlines, summaries, links, err := e.Extract(markup)
	if err != nil {
		return nil, err
	}
	return domain.ZipArticles(headlines, summaries, links), nil
}

func fitLength(list []string, n int) []string {
	if len(list) >= n {
		return list[:n]
	}
	for len(list) < n {
		list = append(list, "")
	}
	return list
}
