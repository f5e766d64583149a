package cleaner

import "github.com/cleared-dev/txclean/internal/model"

// CleanMemo returns the canonical counterparty name for a raw memo.
// mappings is read, never modified.
func CleanMemo(memo string, mappings []model.Mapping) string {
	_, candidate := dispatch(NormalizeSpaces(memo))
	return ApplyNameNormalization(candidate, mappings)
}

// Explanation describes how CleanMemo arrived at its answer.
type Explanation struct {
	Memo      string `json:"memo"`
	Rule      string `json:"rule"`
	Candidate string `json:"candidate"`
	BuiltIn   string `json:"built_in,omitempty"` // built-in table rewrite of Candidate, if any
	Clean     string `json:"clean"`
}

// Explain runs the same steps as CleanMemo and reports the intermediate
// results.
func Explain(memo string, mappings []model.Mapping) Explanation {
	normalized := NormalizeSpaces(memo)
	rule, candidate := dispatch(normalized)
	builtIn, _ := BuiltInNormalization(candidate)
	return Explanation{
		Memo:      normalized,
		Rule:      rule,
		Candidate: candidate,
		BuiltIn:   builtIn,
		Clean:     ApplyNameNormalization(candidate, mappings),
	}
}
