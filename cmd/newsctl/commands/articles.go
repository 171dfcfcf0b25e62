package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mai-repo/Newscraper/internal/app"
	"github.com/mai-repo/Newscraper/internal/database"
)

func newScrapeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the configured listing page and store every article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				inserted, err := a.Scraper.Scrape(ctx)
				if err != nil {
					return fmt.Errorf("scrape %s: %w", a.Scraper.TargetURL(), err)
				}
				renderArticles(out, inserted, fmt.Sprintf("Scraped: %s", a.Scraper.TargetURL()))
				return nil
			})
		},
	}
}

func newNewsCommand() *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "news",
		Short: "List stored articles one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				if perPage > a.Config.News.MaxPerPage {
					perPage = a.Config.News.MaxPerPage
				}
				result, err := a.Articles.ListPage(ctx, page, perPage)
				if err != nil {
					return err
				}
				renderPage(out, result)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&perPage, "per-page", "n", 10, "articles per page")
	return cmd
}

func newHeadlinesCommand() *cobra.Command {
	var keywords []string

	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "List headlines containing any keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				if len(keywords) == 0 {
					keywords = a.Config.News.Keywords
				}
				articles, err := a.Articles.FilterByKeyword(ctx, keywords)
				if err != nil {
					return err
				}
				renderHeadlines(out, articles, keywords)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "keyword to match (repeatable, default from config)")
	return cmd
}

func newSearchCommand() *cobra.Command {
	var headlineQuery, summaryQuery string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search headlines and summaries by substring",
		Long: `Search returns articles whose headline contains --headline or whose
summary contains --summary. Matching is case-sensitive and literal; an
empty query matches every article.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				articles, err := a.Articles.Search(ctx, headlineQuery, summaryQuery)
				if err != nil {
					return err
				}
				renderArticles(out, articles,
					fmt.Sprintf("Headline: %q  Summary: %q", headlineQuery, summaryQuery))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&headlineQuery, "headline", "", "substring to find in headlines")
	cmd.Flags().StringVar(&summaryQuery, "summary", "", "substring to find in summaries")
	return cmd
}

func newReindexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search table from the articles table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App, out io.Writer) error {
				n, err := database.RebuildSearchIndex(ctx, a.DB)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "Search table rebuilt: %d rows\n", n)
				return err
			})
		},
	}
}
