package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/gego-site/internal/models"
)

var wantOrder = []string{"ChatGPT", "Gemini", "Grok", "Perplexity"}

func comparisonNames(items []models.LLMComparison) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.LLM
	}
	return names
}

func TestMapLLMData_CanonicalOrder(t *testing.T) {
	inputs := []map[string]float64{
		nil,
		{},
		{"perplexity": 0.1, "chatgpt": 0.2},
		{"grok": 3, "gemini": 4, "unknown": 9},
	}

	for _, raw := range inputs {
		got := MapLLMData(raw, true)
		require.Len(t, got, 4)
		assert.Equal(t, wantOrder, comparisonNames(got))
	}
}

func TestMapLLMData_MissingDataIsZero(t *testing.T) {
	for _, raw := range []map[string]float64{nil, {}} {
		got := MapLLMData(raw, true)
		for _, item := range got {
			assert.Equal(t, 0, item.Value)
			assert.False(t, item.HasData)
			assert.NotEmpty(t, item.Icon)
		}
	}
}

func TestMapLLMData_PercentageScaling(t *testing.T) {
	got := MapLLMData(map[string]float64{"chatgpt": 0.457}, true)

	assert.Equal(t, 46, got[0].Value)
	assert.True(t, got[0].HasData)
	assert.Equal(t, 0, got[1].Value)
	assert.False(t, got[1].HasData)
}

func TestMapLLMData_RawValues(t *testing.T) {
	got := MapLLMData(map[string]float64{
		"gemini":     72.5,
		"grok":       0,
		"perplexity": 12.4,
	}, false)

	assert.Equal(t, 73, got[1].Value)
	assert.Equal(t, 0, got[2].Value)
	assert.True(t, got[2].HasData, "a reported zero is still data")
	assert.Equal(t, 12, got[3].Value)
}

func TestMapLLMData_NonFinite(t *testing.T) {
	got := MapLLMData(map[string]float64{
		"chatgpt": math.NaN(),
		"gemini":  math.Inf(1),
	}, true)

	assert.Equal(t, 0, got[0].Value)
	assert.False(t, got[0].HasData)
	assert.Equal(t, 0, got[1].Value)
	assert.False(t, got[1].HasData)
}

func TestMapCitationData(t *testing.T) {
	got := MapCitationData(models.CitationOverview{
		"chatgpt": {
			{URL: "a.com", Percentage: 10},
			{URL: "b.com", Percentage: 15},
		},
		"grok": {},
	})

	require.Len(t, got, 4)
	assert.Equal(t, "ChatGPT", got[0].Name)
	assert.Equal(t, 25.0, got[0].Total)
	assert.Equal(t, "2 sources cited", got[0].Subtitle)
	assert.Equal(t, []models.CitationSourceView{
		{URL: "a.com", Count: 10},
		{URL: "b.com", Count: 15},
	}, got[0].Sources)
	assert.True(t, got[0].HasData)

	assert.Equal(t, 0.0, got[1].Total)
	assert.False(t, got[1].HasData)
	assert.NotNil(t, got[1].Sources)

	assert.True(t, got[2].HasData)
	assert.Equal(t, "No sources cited", got[2].Subtitle)
}

func TestMapCitationData_Nil(t *testing.T) {
	got := MapCitationData(nil)

	require.Len(t, got, 4)
	for i, item := range got {
		assert.Equal(t, wantOrder[i], item.Name)
		assert.Equal(t, 0.0, item.Total)
		assert.Empty(t, item.Sources)
	}
}

func TestMapRankingData(t *testing.T) {
	got := MapRankingData(map[string]float64{
		"chatgpt":    2.5,
		"gemini":     0,
		"perplexity": 7,
	})

	require.Len(t, got, 4)
	assert.Equal(t, models.RankEntry{Name: "ChatGPT", Icon: got[0].Icon, Rank: 2.5, HasRank: true}, got[0])
	assert.Equal(t, 0.0, got[1].Rank)
	assert.False(t, got[1].HasRank)
	assert.False(t, got[2].HasRank)
	assert.Equal(t, 7.0, got[3].Rank)

	assert.Equal(t, "#2.5", RankLabel(got[0]))
	assert.Equal(t, "N/A", RankLabel(got[1]))
}

func TestMapRankingData_Nil(t *testing.T) {
	got := MapRankingData(nil)

	require.Len(t, got, 4)
	for i, item := range got {
		assert.Equal(t, wantOrder[i], item.Name)
		assert.Equal(t, 0.0, item.Rank)
		assert.False(t, item.HasRank)
	}
}

func TestMappers_Deterministic(t *testing.T) {
	raw := map[string]float64{"chatgpt": 0.3, "grok": 0.9, "extra": 1}
	overview := models.CitationOverview{"gemini": {{URL: "x.com", Percentage: 3}}}

	assert.Equal(t, MapLLMData(raw, true), MapLLMData(raw, true))
	assert.Equal(t, MapRankingData(raw), MapRankingData(raw))
	assert.Equal(t, MapCitationData(overview), MapCitationData(overview))
}

func TestCanonicalLLMs(t *testing.T) {
	llms := CanonicalLLMs()
	require.Len(t, llms, 4)
	assert.Equal(t, models.LLMChatGPT, llms[0].Key)

	llms[0].Name = "changed"
	assert.Equal(t, "ChatGPT", CanonicalLLMs()[0].Name)

	assert.True(t, IsCanonicalLLM("grok"))
	assert.False(t, IsCanonicalLLM("claude"))
}
