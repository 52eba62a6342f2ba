// Package analytics turns backend metric payloads into the analytics view models:
// per-LLM comparisons, rankings, citation rollups, advisory insight text and
// pagination windows. Every function in this package is pure.
package analytics

import (
	"math"
	"sort"

	"github.com/AI2HU/gego-site/internal/models"
)

// LLM describes one of the answer engines shown on the dashboard
type LLM struct {
	Key  string
	Name string
	Icon string
}

// canonicalLLMs is the fixed display order used by every mapper
var canonicalLLMs = []LLM{
	{Key: models.LLMChatGPT, Name: "ChatGPT", Icon: "/images/llms/chatgpt.svg"},
	{Key: models.LLMGemini, Name: "Gemini", Icon: "/images/llms/gemini.svg"},
	{Key: models.LLMGrok, Name: "Grok", Icon: "/images/llms/grok.svg"},
	{Key: models.LLMPerplexity, Name: "Perplexity", Icon: "/images/llms/perplexity.svg"},
}

// CanonicalLLMs returns a copy of the supported LLMs in display order
func CanonicalLLMs() []LLM {
	out := make([]LLM, len(canonicalLLMs))
	copy(out, canonicalLLMs)
	return out
}

// IsCanonicalLLM reports whether key is one of the supported LLM identifiers
func IsCanonicalLLM(key string) bool {
	for _, llm := range canonicalLLMs {
		if llm.Key == key {
			return true
		}
	}
	return false
}

// orderedKeys returns the keys of a per-LLM map with canonical keys first, in
// display order, followed by any other keys sorted alphabetically.
func orderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for _, llm := range canonicalLLMs {
		if _, ok := m[llm.Key]; ok {
			keys = append(keys, llm.Key)
		}
	}

	var extra []string
	for k := range m {
		if !IsCanonicalLLM(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	return append(keys, extra...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundHalfUp rounds to the nearest integer with halves going up. Non-finite
// values round to 0.
func roundHalfUp(v float64) int {
	if !isFinite(v) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
