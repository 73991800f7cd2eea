// Package lookup resolves region-varying facts into deferred template
// expressions. A sparse region-to-value map either collapses to one
// symbolic expression when every value matches a shared pattern around
// deferred values, or materializes as a template mapping indexed by the
// deployment-time region.
package lookup

import "strings"

// Substitution is one concrete-to-deferred rewrite rule for a single key:
// every literal occurrence of Value is replaced with Token. The slice order
// passed to Tokenize is load-bearing; the domain suffix must be substituted
// before the region code so that a region substring inside an
// already-substituted suffix cannot match again.
type Substitution struct {
	Name  string
	Value string
	Token string
}

// SubstitutionSource yields the substitutions applicable to one lookup key.
type SubstitutionSource func(key string) []Substitution

// Tokenize rewrites a literal value by applying each substitution in order.
// Replacement is plain, global, non-overlapping substring replacement;
// replaced regions are not re-scanned within one substitution.
// Substitutions with an empty concrete value are skipped for this key.
func Tokenize(value string, subs []Substitution) string {
	out := value
	for _, sub := range subs {
		if sub.Value == "" {
			continue
		}
		out = strings.ReplaceAll(out, sub.Value, sub.Token)
	}
	return out
}
