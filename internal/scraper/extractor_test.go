package scraper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mai-repo/Newscraper/internal/domain"
	"github.com/mai-repo/Newscraper/internal/scraper"
)

const twoArticlesHTML = `<html><body>
<article><h2>First headline</h2><p>First summary</p><a href="https://news.example/1">read</a></article>
<article><h2>Second headline</h2><p>Second summary</p><a href="https://news.example/2">read</a></article>
</body></html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := scraper.NewExtractor(scraper.DefaultSelectors())

	headlines, summaries, links, err := e.Extract([]byte(twoArticlesHTML))
	require.NoError(t, err)

	assert.Equal(t, []string{"First headline", "Second headline"}, headlines)
	assert.Equal(t, []string{"First summary", "Second summary"}, summaries)
	assert.Equal(t, []string{"https://news.example/1", "https://news.example/2"}, links)
}

func TestExtractor_Extract_ListsAlwaysAligned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		html  string
		wantN int
	}{
		{"no containers", `<html><body><div><h2>Not in an article</h2></div></body></html>`, 0},
		{"empty input", ``, 0},
		{"missing link", `<article><h2>H</h2><p>S</p></article>`, 1},
		{"summary without headline", `<article><p>orphan</p></article><article><h2>H</h2></article>`, 1},
		{"headline only", `<article><h2>A</h2></article><article><h2>B</h2></article>`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headlines, summaries, links, err := scraper.NewExtractor(scraper.Selectors{}).Extract([]byte(tt.html))
			require.NoError(t, err)

			assert.Len(t, headlines, tt.wantN)
			assert.Len(t, summaries, tt.wantN)
			assert.Len(t, links, tt.wantN)
			assert.NotNil(t, headlines)
		})
	}
}

// A container missing its summary shifts later summaries forward. The
// extractor reports what the page yields and does not realign.
func TestExtractor_Extract_MissingSummaryShiftsLaterSummaries(t *testing.T) {
	t.Parallel()

	html := `
<article><h2>A</h2><p>about A</p><a href="/a">a</a></article>
<article><h2>B</h2><a href="/b">b</a></article>
<article><h2>C</h2><p>about C</p><a href="/c">c</a></article>`

	headlines, summaries, links, err := scraper.NewExtractor(scraper.DefaultSelectors()).Extract([]byte(html))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, headlines)
	assert.Equal(t, []string{"about A", "about C", ""}, summaries)
	assert.Equal(t, []string{"/a", "/b", "/c"}, links)
}

func TestExtractor_Extract_FirstMatchOnly(t *testing.T) {
	t.Parallel()

	html := `<article>
<h2>Main</h2><h2>Secondary</h2>
<p>lead</p><p>body</p>
<a href="/story">story</a><a href="/other">other</a>
</article>`

	headlines, summaries, links, err := scraper.NewExtractor(scraper.DefaultSelectors()).Extract([]byte(html))
	require.NoError(t, err)

	assert.Equal(t, []string{"Main"}, headlines)
	assert.Equal(t, []string{"lead"}, summaries)
	assert.Equal(t, []string{"/story"}, links)
}

// A container whose first anchor has no href contributes no link, even when
// a later anchor has one.
func TestExtractor_Extract_FirstLinkWithoutHrefIsDropped(t *testing.T) {
	t.Parallel()

	html := `<article><h2>A</h2><a>bare</a><a href="/late">late</a></article>
<article><h2>B</h2><a href="">empty</a></article>
<article><h2>C</h2><a href="/c">c</a></article>`

	headlines, _, links, err := scraper.NewExtractor(scraper.DefaultSelectors()).Extract([]byte(html))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, headlines)
	assert.Equal(t, []string{"/c", "", ""}, links)
}

func TestExtractor_Extract_TextIsNotTrimmed(t *testing.T) {
	t.Parallel()

	html := "<article><h2>  Spaced <em>out</em>\n</h2><p> lead </p></article>"

	headlines, summaries, _, err := scraper.NewExtractor(scraper.DefaultSelectors()).Extract([]byte(html))
	require.NoError(t, err)

	assert.Equal(t, []string{"  Spaced out\n"}, headlines)
	assert.Equal(t, []string{" lead "}, summaries)
}

func TestExtractor_CustomSelectors(t *testing.T) {
	t.Parallel()

	html := `<li class="story"><h3>Custom</h3><span class="dek">dek</span><a href="/c">c</a></li>`
	e := scraper.NewExtractor(scraper.Selectors{Container: "li.story", Headline: "h3", Summary: ".dek"})

	got, err := e.ExtractArticles([]byte(html))
	require.NoError(t, err)

	assert.Equal(t, []domain.ExtractedArticle{{Headline: "Custom", Summary: "dek", Link: "/c"}}, got)
}
