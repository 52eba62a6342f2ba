package analytics

import (
	"fmt"

	"github.com/AI2HU/gego-site/internal/models"
)

// MapLLMData maps a per-LLM metric onto the canonical LLM list. Fractions are
// scaled to percentages when isPercentage is set. LLMs without data get value 0
// and HasData false.
func MapLLMData(raw map[string]float64, isPercentage bool) []models.LLMComparison {
	out := make([]models.LLMComparison, len(canonicalLLMs))
	for i, llm := range canonicalLLMs {
		out[i] = models.LLMComparison{
			LLM:  llm.Name,
			Icon: llm.Icon,
		}

		v, ok := raw[llm.Key]
		if !ok || !isFinite(v) {
			continue
		}
		if isPercentage {
			v *= 100
		}
		out[i].Value = roundHalfUp(v)
		out[i].HasData = true
	}
	return out
}

// MapCitationData maps the citation overview onto the canonical LLM list.
// Total is the sum of the source percentages.
func MapCitationData(raw models.CitationOverview) []models.CitationLLM {
	out := make([]models.CitationLLM, len(canonicalLLMs))
	for i, llm := range canonicalLLMs {
		sources, ok := raw[llm.Key]

		views := make([]models.CitationSourceView, 0, len(sources))
		total := 0.0
		for _, src := range sources {
			views = append(views, models.CitationSourceView{
				URL:   src.URL,
				Count: src.Percentage,
			})
			if isFinite(src.Percentage) {
				total += src.Percentage
			}
		}

		out[i] = models.CitationLLM{
			Name:     llm.Name,
			Icon:     llm.Icon,
			Total:    total,
			Subtitle: citationSubtitle(len(sources)),
			Sources:  views,
			HasData:  ok,
		}
	}
	return out
}

func citationSubtitle(n int) string {
	switch n {
	case 0:
		return "No sources cited"
	case 1:
		return "1 source cited"
	default:
		return fmt.Sprintf("%d sources cited", n)
	}
}

// MapRankingData maps the per-LLM average rank onto the canonical LLM list.
// Missing, zero or non-finite ranks resolve to rank 0 with HasRank false.
func MapRankingData(raw map[string]float64) []models.RankEntry {
	out := make([]models.RankEntry, len(canonicalLLMs))
	for i, llm := range canonicalLLMs {
		out[i] = models.RankEntry{
			Name: llm.Name,
			Icon: llm.Icon,
		}

		rank, ok := raw[llm.Key]
		if !ok || !isFinite(rank) || rank <= 0 {
			continue
		}
		out[i].Rank = rank
		out[i].HasRank = true
	}
	return out
}

// RankLabel formats a rank for display, using "N/A" when there is no rank
func RankLabel(entry models.RankEntry) string {
	if !entry.HasRank {
		return "N/A"
	}
	return fmt.Sprintf("#%.1f", entry.Rank)
}
