package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/gego-site/internal/models"
)

func TestBuildDashboard(t *testing.T) {
	ranking := 3.2
	m := &models.BackendMetricResponse{
		BrandName:          "Acme",
		AverageMentionRate: 0.457,
		AverageSentiment:   71.5,
		AverageRanking:     &ranking,
		Citations:          27,
		MentionRateByLLM:   map[string]float64{"chatgpt": 0.6, "grok": 0.2},
		SentimentScoreByLLM: map[string]float64{
			"gemini": 80,
		},
		RankByLLMs: map[string]float64{"perplexity": 4},
		CitationOverview: models.CitationOverview{
			"chatgpt": {
				{URL: "https://www.acme.com/docs", Percentage: 12},
				{URL: "https://reddit.com/r/acme", Percentage: 13},
			},
		},
	}

	d := BuildDashboard("", m)

	assert.Equal(t, "Acme", d.Brand)
	assert.Equal(t, 46, d.MentionRate)
	assert.Equal(t, 72, d.Sentiment)
	assert.Equal(t, 3.2, d.Ranking)
	assert.True(t, d.HasRanking)
	assert.Equal(t, 27, d.Citations)

	require.Len(t, d.MentionsByLLM, 4)
	assert.Equal(t, 60, d.MentionsByLLM[0].Value)
	assert.Equal(t, 80, d.SentimentByLLM[1].Value)
	assert.True(t, d.RankingByLLM[3].HasRank)
	assert.Equal(t, 25.0, d.CitationsByLLM[0].Total)

	assert.Equal(t, []string{"reddit.com", "acme.com"}, d.TopSources)
	assert.Equal(t, MentionsInsight(45.7, "Acme", d.TopSources), d.Insights.Mentions)
	assert.Contains(t, d.Insights.Ranking, "#3.2")
	assert.Contains(t, d.Insights.Citations, "reddit.com and acme.com")
}

func TestBuildDashboard_Nil(t *testing.T) {
	d := BuildDashboard("example.com", nil)

	assert.Equal(t, "example.com", d.Brand)
	assert.Equal(t, 0, d.MentionRate)
	assert.False(t, d.HasRanking)
	assert.Empty(t, d.TopSources)
	assert.Len(t, d.CitationsByLLM, 4)
	assert.Contains(t, d.Insights.Mentions, "sources in Citation Overview")
	assert.Contains(t, d.Insights.Ranking, "N/A")
}

func TestBuildDashboard_WebsiteFallback(t *testing.T) {
	d := BuildDashboard("", &models.BackendMetricResponse{Website: "acme.io"})
	assert.Equal(t, "acme.io", d.Brand)
}
