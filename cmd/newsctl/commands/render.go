package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mai-repo/Newscraper/internal/domain"
)

const (
	idColumnWidth       = 8
	headlineColumnWidth = 60
	summaryColumnWidth  = 60
	linkColumnWidth     = 50
)

func newArticleTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: idColumnWidth},
		{Number: 2, WidthMax: headlineColumnWidth},
		{Number: 3, WidthMax: summaryColumnWidth},
		{Number: 4, WidthMax: linkColumnWidth},
	})
	t.AppendHeader(table.Row{"ID", "Headline", "Summary", "Link"})
	return t
}

// collapse flattens whitespace so multi-line scraped text fits one row.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func renderArticles(out io.Writer, articles []domain.Article, caption string) {
	t := newArticleTable(out)
	for _, a := range articles {
		t.AppendRow(table.Row{a.ID, collapse(a.Headline), collapse(a.Summary), a.Link})
	}
	t.AppendFooter(table.Row{"Total", len(articles), caption, ""})
	t.Render()
}

func renderPage(out io.Writer, page domain.Page) {
	t := newArticleTable(out)
	for _, a := range page.Articles {
		t.AppendRow(table.Row{a.ID, collapse(a.Headline), collapse(a.Summary), a.Link})
	}
	t.AppendFooter(table.Row{
		"Page",
		fmt.Sprintf("%d of %d", page.CurrentPage, page.TotalPages),
		fmt.Sprintf("%d per page", page.PerPage),
		fmt.Sprintf("%d articles", page.TotalArticles),
	})
	t.Render()
}

func renderHeadlines(out io.Writer, articles []domain.Article, keywords []string) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Headline"})
	for i, a := range articles {
		t.AppendRow(table.Row{i + 1, collapse(a.Headline)})
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d (keywords: %s)", len(articles), strings.Join(keywords, ", "))})
	t.Render()
}
