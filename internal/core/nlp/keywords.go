package nlp

import "sort"

// ExtractKeywords returns the up-to-max most frequent stems of the text,
// most frequent first. Ties keep first-occurrence order.
func ExtractKeywords(text string, max int) []string {
	tokens := Normalize(text)

	frequency := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, seen := frequency[token]; !seen {
			order = append(order, token)
		}
		frequency[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return frequency[order[i]] > frequency[order[j]]
	})

	if max > 0 && len(order) > max {
		order = order[:max]
	}
	return order
}
