package models

// LLM identifiers used as keys in the backend's per-LLM maps
const (
	LLMChatGPT    = "chatgpt"
	LLMGemini     = "gemini"
	LLMGrok       = "grok"
	LLMPerplexity = "perplexity"
)

// CitationSource is one URL cited by an LLM and its share of that LLM's citations
type CitationSource struct {
	URL        string  `json:"url"`
	Percentage float64 `json:"percentage"`
}

// CitationOverview maps an LLM identifier to the sources it cited
type CitationOverview map[string][]CitationSource

// BackendMetricResponse is the metrics payload returned by the backend for one brand.
//
// Every per-LLM map is optional. A nil map means the backend did not compute the
// metric at all; a missing key means there is no data for that LLM. Neither case
// is the same as a reported zero.
type BackendMetricResponse struct {
	BrandName           string             `json:"brandName,omitempty"`
	Website             string             `json:"website,omitempty"`
	AverageMentionRate  float64            `json:"averageMentionRate"` // 0..1
	AverageSentiment    float64            `json:"averageSentiment"`   // 0..100
	AverageRanking      *float64           `json:"averageRanking,omitempty"`
	Citations           float64            `json:"citations"`
	MentionRateByLLM    map[string]float64 `json:"mentionRateByLLM,omitempty"`
	SentimentScoreByLLM map[string]float64 `json:"sentimentScoreByLLM,omitempty"`
	RankByLLMs          map[string]float64 `json:"rankByLLMs,omitempty"`
	CitationOverview    CitationOverview   `json:"citationOverview,omitempty"`
}

// Ranking returns the average ranking, or 0 when the backend did not report one
func (m *BackendMetricResponse) Ranking() float64 {
	if m == nil || m.AverageRanking == nil {
		return 0
	}
	return *m.AverageRanking
}
