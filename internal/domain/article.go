// Package domain holds the models and errors shared by the scraper,
// repositories and HTTP handlers.
package domain

// Article is a persisted news item. ID is assigned by the store.
type Article struct {
	ID       int64  `db:"id"       json:"id"`
	Headline string `db:"headline" json:"headline"`
	Summary  string `db:"summary"  json:"summary"`
	Link     string `db:"link"     json:"link"`
}

// ExtractedArticle is one headline/summary/link triple produced by a scrape,
// before it has an id. Summary and Link are empty when the container had none.
type ExtractedArticle struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Link     string `json:"link"`
}

// Headline is the projection returned by the keyword filter route.
type Headline struct {
	Headline string `db:"headline" json:"headline"`
}

// Page is one page of articles in id order.
type Page struct {
	CurrentPage   int       `json:"current_page"`
	TotalPages    int       `json:"total_pages"`
	PerPage       int       `json:"per_page"`
	TotalArticles int       `json:"total_articles"`
	Articles      []Article `json:"articles"`
}

// ZipArticles pairs three aligned lists into triples. The result length is
// the length of headlines; missing summaries or links become "".
func ZipArticles(headlines, summaries, links []string) []ExtractedArticle {
	out := make([]ExtractedArticle, len(headlines))
	for i, h := range headlines {
		out[i].Headline = h
		if i < len(summaries) {
			out[i].Summary = summaries[i]
		}
		if i < len(links) {
			out[i].Link = links[i]
		}
	}
	return out
}
