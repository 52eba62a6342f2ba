package analytics

import (
	"net/url"
	"sort"
	"strings"

	"github.com/AI2HU/gego-site/internal/models"
)

// TopSourceCount is how many cited sources feed the insight text
const TopSourceCount = 5

// authorityDomains are publishers whose citations count as authoritative
var authorityDomains = []string{
	"wikipedia",
	"forbes",
	"techcrunch",
	"nytimes",
	"wsj",
	"g2",
	"capterra",
	"trustpilot",
}

// ExtractHostname returns the bare hostname of a cited URL, without a leading
// "www.". Strings without a scheme are parsed as https URLs. If the string cannot
// be parsed it is returned unchanged.
func ExtractHostname(rawURL string) string {
	candidate := rawURL
	if !strings.HasPrefix(candidate, "http") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return rawURL
	}

	host := u.Hostname()
	if host == "" {
		return rawURL
	}
	return strings.TrimPrefix(host, "www.")
}

// TopCitedSources returns the n most cited sources across all LLMs, ordered by
// percentage. Sources cited by several LLMs appear once per LLM.
func TopCitedSources(overview models.CitationOverview, n int) []models.CitationSource {
	var all []models.CitationSource
	for _, key := range orderedKeys(overview) {
		all = append(all, overview[key]...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Percentage > all[j].Percentage
	})

	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// SourceLabels converts cited sources into hostnames for display
func SourceLabels(sources []models.CitationSource) []string {
	labels := make([]string, 0, len(sources))
	for _, src := range sources {
		labels = append(labels, ExtractHostname(src.URL))
	}
	return labels
}

// HasAuthoritySource reports whether any of the sources is a known authority
// publisher. Matching is a case-insensitive substring test on the raw URL.
func HasAuthoritySource(sources []models.CitationSource) bool {
	for _, src := range sources {
		lower := strings.ToLower(src.URL)
		for _, domain := range authorityDomains {
			if strings.Contains(lower, domain) {
				return true
			}
		}
	}
	return false
}
