// Package nlp implements the lexical text processing used by the chatbot
// matching pipeline: normalization (tokenize, stopword removal, stemming),
// Jaccard similarity scoring and keyword based intent detection.
package nlp

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// English stopwords, aligned with the usual NLP preprocessing lists.
// Single letters cover tokenization leftovers from contractions ("what's").
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "cannot",
		"could", "did", "do", "does", "doing", "down", "during", "each",
		"few", "for", "from", "further", "had", "has", "have", "having",
		"he", "her", "here", "hers", "herself", "him", "himself", "his",
		"how", "i", "if", "in", "into", "is", "it", "its", "itself", "just",
		"me", "more", "most", "much", "my", "myself", "no", "nor", "not",
		"now", "of", "off", "on", "once", "only", "or", "other", "our",
		"ours", "ourselves", "out", "over", "own", "same", "she", "should",
		"so", "some", "such", "than", "that", "the", "their", "theirs",
		"them", "themselves", "then", "there", "these", "they", "this",
		"those", "through", "to", "too", "under", "until", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "would", "you", "your",
		"yours", "yourself", "yourselves",
		"s", "t", "d", "ll", "m", "re", "ve",
	} {
		stopwords[w] = struct{}{}
	}
}

// Normalize lowercases the text, tokenizes on word boundaries (dropping
// punctuation), removes stopwords and stems the remaining tokens with the
// snowball English stemmer. Order and duplicates are preserved; the caller
// decides whether they matter. Empty input yields an empty slice.
func Normalize(text string) []string {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)

	stems := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, skip := stopwords[token]; skip {
			continue
		}
		stems = append(stems, english.Stem(token, false))
	}
	return stems
}
