package lookup

import (
	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/token"
)

// Option configures one Resolve call.
type Option func(*options)

type options struct {
	def           string
	hasDefault    bool
	subs          SubstitutionSource
	discriminator string
}

// WithDefault supplies the literal returned when the lookup map is empty.
func WithDefault(value string) Option {
	return func(o *options) {
		o.def = value
		o.hasDefault = true
	}
}

// WithSubstitutions supplies the per-key rewrite rules used for collapse
// detection. Without it, a map only collapses when all values are
// identical.
func WithSubstitutions(src SubstitutionSource) Option {
	return func(o *options) { o.subs = src }
}

// WithDiscriminator overrides the deferred value used as the mapping's
// top-level index at deployment time. Defaults to the current region.
func WithDiscriminator(tok string) Option {
	return func(o *options) { o.discriminator = tok }
}

// Resolve turns a sparse per-region value map for a fact into a deferred
// template expression.
//
// An empty map yields the configured default, or a *MissingFactError.
// When every value tokenizes to the same form the shared form is returned
// and no construct is created. Otherwise a mapping named after the fact's
// class is found or created under scope, its cells are populated
// (last-write-wins), and an Fn::FindInMap expression indexed by the
// discriminator is returned.
//
// Resolution is idempotent with respect to the scope: repeated calls for
// the same fact reuse the mapping created by the first call.
func Resolve(scope construct.Construct, factName string, values map[string]string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.discriminator == "" {
		o.discriminator = token.Region
	}

	if len(values) == 0 {
		if o.hasDefault {
			return o.def, nil
		}
		return "", &MissingFactError{Fact: factName}
	}

	if expr, ok := TryCollapse(values, o.subs); ok {
		return expr, nil
	}

	return materialize(scope, factName, values, o.discriminator)
}

// materialize persists the lookup map as a mapping under scope and returns
// the deferred indexed-lookup expression.
func materialize(scope construct.Construct, factName string, values map[string]string, discriminator string) (string, error) {
	identity := TableIdentity(factName)
	rowKey := RowKey(factName)

	var mapping *cfn.Mapping
	if existing := scope.Node().FindChild(identity); existing != nil {
		m, ok := existing.(*cfn.Mapping)
		if !ok {
			return "", &TypeMismatchError{Identity: identity, Found: existing}
		}
		mapping = m
	} else {
		m, err := cfn.NewMapping(scope, identity)
		if err != nil {
			return "", err
		}
		mapping = m
	}

	for key, literal := range values {
		mapping.SetValue(key, rowKey, literal)
	}

	return mapping.FindInMap(discriminator, rowKey), nil
}
