package lookup

import "sort"

// TryCollapse attempts to reduce a non-empty lookup map to one symbolic
// expression. Every value is tokenized with its key's substitutions; if all
// tokenized forms are string-identical the shared form is returned, valid
// for any key. Otherwise ok is false and the caller materializes a table.
//
// A single-entry map always collapses: its one tokenized form trivially
// equals itself.
func TryCollapse(values map[string]string, subs SubstitutionSource) (string, bool) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var shared string
	for i, key := range keys {
		var keySubs []Substitution
		if subs != nil {
			keySubs = subs(key)
		}
		tokenized := Tokenize(values[key], keySubs)
		if i == 0 {
			shared = tokenized
			continue
		}
		if tokenized != shared {
			return "", false
		}
	}
	return shared, true
}
