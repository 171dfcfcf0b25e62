package domain

// Favorite links a username to an article. Deleting the article deletes it.
type Favorite struct {
	ID       int64  `db:"id"       json:"id"`
	Username string `db:"username" json:"username"`
	NewsID   int64  `db:"news_id"  json:"news_id"`
}

// FavoriteArticle is a favorite joined with its article. ID is the favorite id.
type FavoriteArticle struct {
	ID       int64  `db:"id"       json:"id"`
	Headline string `db:"headline" json:"headline"`
	Summary  string `db:"summary"  json:"summary"`
	Link     string `db:"link"     json:"link"`
}
