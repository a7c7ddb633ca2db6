package nlp

// IntentGeneral is returned when no rule matches.
const IntentGeneral = "general"

type intentRule struct {
	keywords [][]string // each keyword normalized; multi-word keywords stay as phrases
	intent   string
}

// Rule order is significant: earlier rules win on conflicting matches.
var intentRules []intentRule

func init() {
	raw := []struct {
		keywords []string
		intent   string
	}{
		{[]string{"price", "cost", "how much"}, "pricing"},
		{[]string{"how to", "guide", "tutorial"}, "instructions"},
		{[]string{"problem", "error", "not working"}, "troubleshooting"},
		{[]string{"contact", "email", "phone", "support"}, "contact"},
		{[]string{"feature", "specification", "what can"}, "features"},
	}

	for _, r := range raw {
		rule := intentRule{intent: r.intent}
		for _, kw := range r.keywords {
			stems := Normalize(kw)
			if len(stems) == 0 {
				// Keyword made of stopwords only, can never match.
				continue
			}
			rule.keywords = append(rule.keywords, stems)
		}
		intentRules = append(intentRules, rule)
	}
}

// DetectIntent maps free text to a coarse intent label by testing a fixed
// ordered rule list against the normalized token sequence. The label is
// advisory conversation metadata; it never influences matching.
func DetectIntent(text string) string {
	tokens := Normalize(text)

	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if containsPhrase(tokens, keyword) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}

// containsPhrase reports whether phrase occurs in tokens as a consecutive
// subsequence. Single-token phrases degrade to a plain membership test.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
outer:
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		for j, p := range phrase {
			if tokens[i+j] != p {
				continue outer
			}
		}
		return true
	}
	return false
}
