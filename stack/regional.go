package stack

import (
	"github.com/hemantobora/stackcraft/lookup"
	"github.com/hemantobora/stackcraft/regioninfo"
	"github.com/hemantobora/stackcraft/token"
)

// FactOption configures one RegionalFact call.
type FactOption func(*factOptions)

type factOptions struct {
	def        string
	hasDefault bool
}

// WithDefault supplies the value used when the fact is registered for no
// candidate region.
func WithDefault(value string) FactOption {
	return func(o *factOptions) {
		o.def = value
		o.hasDefault = true
	}
}

// RegionalFact resolves a region-varying fact for this stack.
//
// With a concrete region the registry is consulted directly; the default
// applies when the fact is unregistered there. With an environment-agnostic
// stack the fact's values across the target partitions are handed to the
// lookup engine, which either collapses them to one deferred expression or
// materializes a mapping on this stack indexed by the deploy-time region.
func (s *Stack) RegionalFact(name string, opts ...FactOption) (string, error) {
	var o factOptions
	for _, opt := range opts {
		opt(&o)
	}

	if s.env.Region != "" {
		if v, ok := s.facts.Find(s.env.Region, name); ok {
			return v, nil
		}
		if o.hasDefault {
			return o.def, nil
		}
		return "", &lookup.MissingFactError{Fact: name}
	}

	regions := regioninfo.PartitionRegions(s.partitions)
	values := s.facts.RegionMap(name, regions)
	s.logger.Debug("resolving regional fact", "fact", name,
		"candidates", len(regions), "registered", len(values))

	lookupOpts := []lookup.Option{lookup.WithSubstitutions(s.factSubstitutions)}
	if o.hasDefault {
		lookupOpts = append(lookupOpts, lookup.WithDefault(o.def))
	}
	expr, err := lookup.Resolve(s, name, values, lookupOpts...)
	if err != nil {
		return "", err
	}
	s.logger.Debug("regional fact resolved", "fact", name,
		"deferred", token.IsUnresolved(expr))
	return expr, nil
}

// factSubstitutions yields the rewrite rules for one candidate region. The
// domain suffix is rewritten before the region code so a region substring
// inside a substituted suffix cannot match again.
func (s *Stack) factSubstitutions(region string) []lookup.Substitution {
	suffix, _ := s.facts.Find(region, regioninfo.DomainSuffix)
	return []lookup.Substitution{
		{Name: "domainSuffix", Value: suffix, Token: token.URLSuffix},
		{Name: "region", Value: region, Token: token.Region},
	}
}
