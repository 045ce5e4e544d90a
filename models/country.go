package models

// CountryProfile is a snapshot of one country as reported by the directory.
type CountryProfile struct {
	Name       string   `json:"name"`
	Landmass   float64  `json:"landmass"` // sq km
	Population int64    `json:"population"`
	Languages  []string `json:"languages"`
	Flag       string   `json:"flag"` // PNG URL
}

// FunFact is the single-field output of the fun fact prompt.
type FunFact struct {
	FunFact string `json:"funFact"`
}

// NewsArticle is one item of a news search response, in provider order.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Date        string `json:"date"`
}

// NewsSummary is the single-field output of the news summary prompt.
type NewsSummary struct {
	Summary string `json:"summary"`
}
