package analytics

import (
	"fmt"
	"strings"

	"github.com/AI2HU/gego-site/internal/models"
)

// LineBreak separates the lines of an insight. Renderers show each line as its own paragraph.
const LineBreak = "\n"

// fallbackSources is used in place of source names when nothing was cited
const fallbackSources = "sources in Citation Overview"

// Tier is the performance band a metric falls into
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierNeedsImprovement Tier = "needs-improvement"
	TierLow              Tier = "low"
)

// insightRule selects a template when the metric reaches bound. The last rule of
// a table is the fallback and its bound is ignored.
type insightRule struct {
	tier              Tier
	bound             float64
	requiresAuthority bool
	lines             []string
}

type insightTable struct {
	lowerIsBetter bool
	rules         []insightRule
}

func (t insightTable) classify(v float64, authority bool) insightRule {
	fallback := t.rules[len(t.rules)-1]
	if !isFinite(v) {
		return fallback
	}

	for _, rule := range t.rules[:len(t.rules)-1] {
		if rule.requiresAuthority && !authority {
			continue
		}
		if t.lowerIsBetter && v <= rule.bound {
			return rule
		}
		if !t.lowerIsBetter && v >= rule.bound {
			return rule
		}
	}
	return fallback
}

var mentionsTable = insightTable{
	rules: []insightRule{
		{tier: TierExcellent, bound: 90, lines: []string{
			"{brand} appears in {value} of AI answers, which is excellent visibility.",
			"Step 1: Keep the content cited by {sources} fresh so LLMs keep recommending {brand}.",
			"Step 2: Expand into adjacent topics and comparison queries to defend your share of answers.",
		}},
		{tier: TierGood, bound: 60, lines: []string{
			"{brand} appears in {value} of AI answers, a solid level of visibility.",
			"Step 1: Publish in-depth guides on the topics covered by {sources}.",
			"Step 2: Target the prompts where {brand} is still missing to close the remaining gap.",
		}},
		{tier: TierNeedsImprovement, bound: 30, lines: []string{
			"{brand} appears in only {value} of AI answers, so visibility needs improvement.",
			"Step 1: Get {brand} featured on {sources}, the domains LLMs already trust for this topic.",
			"Step 2: Add clear product descriptions, FAQs and comparison pages to your own site.",
		}},
		{tier: TierLow, lines: []string{
			"{brand} appears in just {value} of AI answers, which is low visibility.",
			"Step 1: Start by earning mentions on {sources} to give LLMs a reason to cite {brand}.",
			"Step 2: Create authoritative content that directly answers the questions in your prompt list.",
		}},
	},
}

var sentimentTable = insightTable{
	rules: []insightRule{
		{tier: TierExcellent, bound: 80, lines: []string{
			"AI answers describe {brand} very positively with a sentiment score of {value}.",
			"Step 1: Amplify the reviews and case studies behind this perception on {sources}.",
			"Step 2: Monitor new answers regularly so negative narratives are caught early.",
		}},
		{tier: TierGood, bound: 60, lines: []string{
			"Sentiment toward {brand} is mostly positive with a score of {value}.",
			"Step 1: Address the remaining objections with customer stories on {sources}.",
			"Step 2: Encourage satisfied customers to leave public reviews.",
		}},
		{tier: TierNeedsImprovement, bound: 40, lines: []string{
			"Sentiment toward {brand} is mixed with a score of {value}.",
			"Step 1: Find the criticisms repeated in AI answers and publish clear responses on {sources}.",
			"Step 2: Highlight recent improvements and customer wins on your blog and in press releases.",
		}},
		{tier: TierLow, lines: []string{
			"Sentiment toward {brand} is negative with a score of {value}.",
			"Step 1: Audit what {sources} say about {brand} and correct outdated or inaccurate claims.",
			"Step 2: Launch a reputation plan built on testimonials, reviews and expert endorsements.",
		}},
	},
}

var rankingTable = insightTable{
	lowerIsBetter: true,
	rules: []insightRule{
		{tier: TierExcellent, bound: 2, lines: []string{
			"{brand} ranks {value} on average, at the top of AI recommendations.",
			"Step 1: Reinforce your lead by keeping the pages on {sources} accurate and current.",
			"Step 2: Watch competitors closely and respond quickly to new comparison content.",
		}},
		{tier: TierGood, bound: 5, lines: []string{
			"{brand} ranks {value} on average, a good position in AI recommendations.",
			"Step 1: Strengthen your differentiators on {sources} to move into the top two.",
			"Step 2: Publish head-to-head comparisons against the brands ranked above you.",
		}},
		{tier: TierNeedsImprovement, bound: 10, lines: []string{
			"{brand} ranks {value} on average, so its position needs work.",
			"Step 1: Earn coverage on {sources}, which shape how LLMs order their recommendations.",
			"Step 2: Make your category, pricing and use cases explicit on your own site.",
		}},
		{tier: TierLow, lines: []string{
			"{brand} ranks {value} on average, low in AI recommendations.",
			"Step 1: Get {brand} listed on {sources} and other roundups for your category.",
			"Step 2: Build topical authority with content that answers buyer questions end to end.",
		}},
	},
}

var citationsTable = insightTable{
	rules: []insightRule{
		{tier: TierExcellent, bound: 50, requiresAuthority: true, lines: []string{
			"{brand} is cited {value} times, including authoritative publishers.",
			"Step 1: Keep your presence on {sources} current with fresh data and quotes.",
			"Step 2: Pitch original research to keep earning high-authority citations.",
		}},
		{tier: TierGood, bound: 25, lines: []string{
			"{brand} is cited {value} times across AI answers.",
			"Step 1: Strengthen your pages on {sources} with up-to-date facts.",
			"Step 2: Earn coverage on authority sites such as Wikipedia, G2 or Forbes to reach the top tier.",
		}},
		{tier: TierNeedsImprovement, bound: 10, lines: []string{
			"{brand} is cited {value} times, which leaves room to grow.",
			"Step 1: Build relationships with the publishers behind {sources}.",
			"Step 2: Publish data-driven content that other sites want to reference.",
		}},
		{tier: TierLow, lines: []string{
			"{brand} is cited only {value} times.",
			"Step 1: Get listed on review platforms and directories, starting with {sources}.",
			"Step 2: Create citable resources such as statistics pages, glossaries and guides.",
		}},
	},
}

// ClassifyMentions returns the tier for a mention rate on a 0..100 scale
func ClassifyMentions(rate float64) Tier {
	return mentionsTable.classify(displayed(rate), false).tier
}

// ClassifySentiment returns the tier for a 0..100 sentiment score
func ClassifySentiment(score float64) Tier {
	return sentimentTable.classify(displayed(score), false).tier
}

// ClassifyRanking returns the tier for an average rank. A rank of 0 or below
// means the brand was not ranked and lands in the lowest tier.
func ClassifyRanking(rank float64) Tier {
	return classifyRank(rank).tier
}

func classifyRank(rank float64) insightRule {
	if rank <= 0 {
		return rankingTable.rules[len(rankingTable.rules)-1]
	}
	return rankingTable.classify(rank, false)
}

// ClassifyCitations returns the tier for a citation count. The top tier also
// requires an authority publisher among the top sources.
func ClassifyCitations(count float64, topSources []models.CitationSource) Tier {
	return citationsTable.classify(count, HasAuthoritySource(topSources)).tier
}

// displayed is the whole-number value shown in the text. Mentions and
// sentiment are classified on it.
func displayed(v float64) float64 {
	return float64(roundHalfUp(v))
}

// MentionsInsight builds the advisory text for a mention rate on a 0..100 scale
func MentionsInsight(rate float64, brand string, sources []string) string {
	rule := mentionsTable.classify(displayed(rate), false)
	return render(rule, brand, fmt.Sprintf("%d%%", roundHalfUp(rate)), sources)
}

// SentimentInsight builds the advisory text for a 0..100 sentiment score
func SentimentInsight(score float64, brand string, sources []string) string {
	rule := sentimentTable.classify(displayed(score), false)
	return render(rule, brand, fmt.Sprintf("%d/100", roundHalfUp(score)), sources)
}

// RankingInsight builds the advisory text for an average rank (lower is better)
func RankingInsight(rank float64, brand string, sources []string) string {
	value := "N/A"
	if isFinite(rank) && rank > 0 {
		value = fmt.Sprintf("#%.1f", rank)
	}
	return render(classifyRank(rank), brand, value, sources)
}

// CitationsInsight builds the advisory text for a citation count. topSources are
// the raw top cited sources; up to two of their hostnames appear in the text.
func CitationsInsight(count float64, brand string, topSources []models.CitationSource) string {
	rule := citationsTable.classify(count, HasAuthoritySource(topSources))
	return render(rule, brand, fmt.Sprintf("%d", roundHalfUp(count)), SourceLabels(topSources))
}

func render(rule insightRule, brand, value string, sources []string) string {
	if strings.TrimSpace(brand) == "" {
		brand = "your brand"
	}

	r := strings.NewReplacer(
		"{brand}", brand,
		"{value}", value,
		"{sources}", sourcesPhrase(sources),
	)

	lines := make([]string, len(rule.lines))
	for i, line := range rule.lines {
		lines[i] = r.Replace(line)
	}
	return strings.Join(lines, LineBreak)
}

// sourcesPhrase joins the first two non-empty source labels with "and"
func sourcesPhrase(sources []string) string {
	picked := make([]string, 0, 2)
	for _, s := range sources {
		if s = strings.TrimSpace(s); s != "" {
			picked = append(picked, s)
		}
		if len(picked) == 2 {
			break
		}
	}

	if len(picked) == 0 {
		return fallbackSources
	}
	return strings.Join(picked, " and ")
}
