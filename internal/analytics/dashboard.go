package analytics

import "github.com/AI2HU/gego-site/internal/models"

// BuildDashboard assembles the full analytics view model for a brand. A nil
// payload yields a dashboard with zero values and "no data" flags.
func BuildDashboard(brand string, m *models.BackendMetricResponse) *models.Dashboard {
	if m == nil {
		m = &models.BackendMetricResponse{}
	}
	if brand == "" {
		brand = m.BrandName
	}
	if brand == "" {
		brand = m.Website
	}

	topSources := TopCitedSources(m.CitationOverview, TopSourceCount)
	labels := SourceLabels(topSources)

	mentionRate := m.AverageMentionRate * 100
	ranking := m.Ranking()
	hasRanking := isFinite(ranking) && ranking > 0
	if !hasRanking {
		ranking = 0
	}

	return &models.Dashboard{
		Brand:          brand,
		MentionRate:    roundHalfUp(mentionRate),
		Sentiment:      roundHalfUp(m.AverageSentiment),
		Ranking:        ranking,
		HasRanking:     hasRanking,
		Citations:      roundHalfUp(m.Citations),
		MentionsByLLM:  MapLLMData(m.MentionRateByLLM, true),
		SentimentByLLM: MapLLMData(m.SentimentScoreByLLM, false),
		RankingByLLM:   MapRankingData(m.RankByLLMs),
		CitationsByLLM: MapCitationData(m.CitationOverview),
		TopSources:     labels,
		Insights: models.Insights{
			Mentions:  MentionsInsight(mentionRate, brand, labels),
			Sentiment: SentimentInsight(m.AverageSentiment, brand, labels),
			Ranking:   RankingInsight(m.Ranking(), brand, labels),
			Citations: CitationsInsight(m.Citations, brand, topSources),
		},
	}
}
