// Package mappings persists the user's name mapping list.
//
// The file is a YAML sequence of {from, to} pairs. A JSON array of the same
// objects is valid YAML, so lists exported from the browser tool load as-is.
package mappings

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/txclean/internal/cleaner"
	"github.com/cleared-dev/txclean/internal/model"
)

// ErrEmptyMapping is returned by Upsert when from or to is blank.
var ErrEmptyMapping = errors.New("mapping needs both from and to")

var (
	normalize = cleaner.NormalizeSpaces
	key       = cleaner.LookupKey
)

// Sanitize normalizes whitespace in every entry and drops entries with an
// empty from or to. The input is not modified.
func Sanitize(list []model.Mapping) []model.Mapping {
	out := make([]model.Mapping, 0, len(list))
	for _, m := range list {
		m = model.Mapping{From: normalize(m.From), To: normalize(m.To)}
		if m.From == "" || m.To == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Load reads a mapping file. A missing file is an empty list.
func Load(path string) ([]model.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Mapping{}, nil
		}
		return nil, fmt.Errorf("reading mappings: %w", err)
	}
	var list []model.Mapping
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing mappings: %w", err)
	}
	return Sanitize(list), nil
}

// Save writes list to path as YAML.
func Save(path string, list []model.Mapping) error {
	if list == nil {
		list = []model.Mapping{}
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshaling mappings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing mappings: %w", err)
	}
	return nil
}

// Upsert returns a copy of list with from -> to set. An existing entry with
// the same case-insensitive from is replaced in place; otherwise the entry
// is appended.
func Upsert(list []model.Mapping, from, to string) ([]model.Mapping, error) {
	m := model.Mapping{From: normalize(from), To: normalize(to)}
	if m.From == "" || m.To == "" {
		return nil, ErrEmptyMapping
	}

	out := make([]model.Mapping, len(list), len(list)+1)
	copy(out, list)
	k := key(m.From)
	for i := range out {
		if key(out[i].From) == k {
			out[i] = m
			return out, nil
		}
	}
	return append(out, m), nil
}

// Remove returns a copy of list without the entry whose from matches, and
// whether one was found.
func Remove(list []model.Mapping, from string) ([]model.Mapping, bool) {
	k := key(from)
	out := make([]model.Mapping, 0, len(list))
	found := false
	for _, m := range list {
		if !found && key(m.From) == k {
			found = true
			continue
		}
		out = append(out, m)
	}
	return out, found
}

// RemoveAt returns a copy of list without the entry at index i.
func RemoveAt(list []model.Mapping, i int) ([]model.Mapping, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("mapping index %d out of range [0, %d)", i, len(list))
	}
	out := make([]model.Mapping, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}
