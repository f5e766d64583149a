package cleaner

// dispatch runs memo through the catalog and returns the name of the rule
// that matched with its cleaned candidate. memo must already be
// whitespace-normalized. An empty extraction falls back to memo; later rules
// are not consulted.
func dispatch(memo string) (rule, candidate string) {
	for _, r := range catalog {
		if !r.Match(memo) {
			continue
		}
		if out := NormalizeSpaces(r.Extract(memo)); out != "" {
			return r.Name, out
		}
		return r.Name, memo
	}
	return passthroughRule, memo
}
