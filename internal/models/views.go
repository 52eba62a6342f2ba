package models

// View models built by the analytics package. They are derived fresh for every
// request and never modified after construction.

// LLMComparison is one LLM's value for a metric
type LLMComparison struct {
	LLM     string `json:"llm"`
	Icon    string `json:"icon"`
	Value   int    `json:"value"`
	HasData bool   `json:"hasData"`
}

// CitationSourceView is a cited source as shown in the citation overview.
// Count holds the source's citation percentage, not a tally.
type CitationSourceView struct {
	URL   string  `json:"url"`
	Count float64 `json:"count"`
}

// CitationLLM groups the sources one LLM cited
type CitationLLM struct {
	Name     string               `json:"name"`
	Icon     string               `json:"icon"`
	Total    float64              `json:"total"`
	Subtitle string               `json:"subtitle"`
	Sources  []CitationSourceView `json:"sources"`
	HasData  bool                 `json:"hasData"`
}

// RankEntry is one LLM's average rank for the brand. Rank 0 means no rank.
type RankEntry struct {
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Rank    float64 `json:"rank"`
	HasRank bool    `json:"hasRank"`
}

// Insights holds the advisory text for each metric family
type Insights struct {
	Mentions  string `json:"mentions"`
	Sentiment string `json:"sentiment"`
	Ranking   string `json:"ranking"`
	Citations string `json:"citations"`
}

// Dashboard is the complete analytics view model for one brand
type Dashboard struct {
	Brand          string          `json:"brand"`
	MentionRate    int             `json:"mentionRate"`
	Sentiment      int             `json:"sentiment"`
	Ranking        float64         `json:"ranking"`
	HasRanking     bool            `json:"hasRanking"`
	Citations      int             `json:"citations"`
	MentionsByLLM  []LLMComparison `json:"mentionsByLLM"`
	SentimentByLLM []LLMComparison `json:"sentimentByLLM"`
	RankingByLLM   []RankEntry     `json:"rankingByLLM"`
	CitationsByLLM []CitationLLM   `json:"citationsByLLM"`
	TopSources     []string        `json:"topSources"`
	Insights       Insights        `json:"insights"`
}
