package model

// Mapping rewrites a cleaned name to a user-chosen label.
// From is compared case-insensitively after whitespace normalization.
type Mapping struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}
