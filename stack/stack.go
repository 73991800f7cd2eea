// Package stack ties the construct tree to template synthesis: a Stack owns
// one CloudFormation template, an App owns stacks and writes the cloud
// assembly.
package stack

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/go-hclog"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/regioninfo"
	"github.com/hemantobora/stackcraft/token"
)

// Env pins a stack to a deployment target. Empty fields mean
// environment-agnostic: the corresponding pseudo parameter is used and
// region-varying facts resolve through deploy-time lookup tables.
type Env struct {
	Account string
	Region  string
}

// Environment variables consulted when a stack's Env is left empty,
// following the CDK_DEFAULT_* convention.
const (
	EnvDefaultAccount = "STACKCRAFT_DEFAULT_ACCOUNT"
	EnvDefaultRegion  = "STACKCRAFT_DEFAULT_REGION"
)

// Props configures a new Stack.
type Props struct {
	Env         Env
	Description string
	// TargetPartitions bounds the regions considered when building
	// deploy-time fact lookups. Defaults to the aws partition.
	TargetPartitions []string
}

// Stack is a construct owning one template.
type Stack struct {
	node *construct.Node

	name        string
	env         Env
	description string
	partitions  []string
	facts       *regioninfo.Registry
	logger      hclog.Logger
}

var stackNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// New attaches a stack under scope, usually an App.
func New(scope construct.Construct, name string, props Props) (*Stack, error) {
	env := props.Env
	if env.Account == "" {
		env.Account = os.Getenv(EnvDefaultAccount)
	}
	if env.Region == "" {
		env.Region = os.Getenv(EnvDefaultRegion)
	}
	partitions := props.TargetPartitions
	if len(partitions) == 0 {
		partitions = []string{"aws"}
	}
	s := &Stack{
		name:        name,
		env:         env,
		description: props.Description,
		partitions:  partitions,
		facts:       regioninfo.Default(),
		logger:      hclog.NewNullLogger(),
	}
	n, err := construct.NewNode(s, scope, name)
	if err != nil {
		return nil, err
	}
	s.node = n
	if app, ok := scope.(*App); ok {
		s.logger = app.logger.Named(name)
	}
	return s, nil
}

func (s *Stack) Node() *construct.Node { return s.node }

// IsTemplateRoot marks the stack as the scope logical IDs are derived
// against.
func (s *Stack) IsTemplateRoot() bool { return true }

// Of returns the stack enclosing a construct.
func Of(c construct.Construct) (*Stack, error) {
	for cur := c; cur != nil; {
		if s, ok := cur.(*Stack); ok {
			return s, nil
		}
		cur = cur.Node().Parent()
	}
	return nil, fmt.Errorf("construct %q is not inside a stack", c.Node().Path())
}

// Name returns the stack name.
func (s *Stack) Name() string { return s.name }

// Description returns the template description.
func (s *Stack) Description() string { return s.description }

// Region returns the stack's concrete region, or the region pseudo
// parameter when environment-agnostic.
func (s *Stack) Region() string {
	if s.env.Region != "" {
		return s.env.Region
	}
	return token.Region
}

// Account returns the stack's concrete account, or the account pseudo
// parameter when environment-agnostic.
func (s *Stack) Account() string {
	if s.env.Account != "" {
		return s.env.Account
	}
	return token.AccountID
}

// Partition returns the stack's partition name: a registry fact when the
// region is concrete, otherwise the partition pseudo parameter.
func (s *Stack) Partition() string {
	if s.env.Region != "" {
		if v, ok := s.facts.Find(s.env.Region, regioninfo.PartitionName); ok {
			return v
		}
	}
	return token.Partition
}

// URLSuffix returns the stack's domain suffix: a registry fact when the
// region is concrete, otherwise the URL-suffix pseudo parameter.
func (s *Stack) URLSuffix() string {
	if s.env.Region != "" {
		if v, ok := s.facts.Find(s.env.Region, regioninfo.DomainSuffix); ok {
			return v
		}
	}
	return token.URLSuffix
}

// TargetPartitions returns the partitions bounding deploy-time fact
// enumeration.
func (s *Stack) TargetPartitions() []string { return s.partitions }

// Validate checks the stack's configuration.
func (s *Stack) Validate() error {
	if !stackNameRe.MatchString(s.name) {
		return fmt.Errorf("stack name %q must start with a letter and contain only letters, digits, and hyphens", s.name)
	}
	if len(s.name) > 128 {
		return fmt.Errorf("stack name %q exceeds 128 characters", s.name)
	}
	return nil
}

// synthesize collects the stack's template elements, resolves deferred
// values, and returns the finished document.
func (s *Stack) synthesize() (*cfn.Template, error) {
	tmpl := cfn.NewTemplate()
	tmpl.Description = s.description

	var elements []cfn.Element
	s.node.Walk(func(c construct.Construct) {
		if e, ok := c.(cfn.Element); ok {
			elements = append(elements, e)
		}
	})
	s.logger.Debug("collected template elements", "count", len(elements))
	for _, e := range elements {
		if err := e.AddToTemplate(tmpl); err != nil {
			return nil, &SynthError{Stack: s.name, Phase: "collect", Cause: err}
		}
	}

	for _, section := range []*map[string]any{
		&tmpl.Parameters, &tmpl.Mappings, &tmpl.Conditions, &tmpl.Resources, &tmpl.Outputs,
	} {
		if *section == nil {
			continue
		}
		resolved, err := token.Resolve(*section)
		if err != nil {
			return nil, &SynthError{Stack: s.name, Phase: "resolve", Cause: err}
		}
		*section = resolved.(map[string]any)
	}

	if err := tmpl.CheckLimits(); err != nil {
		return nil, &SynthError{Stack: s.name, Phase: "collect", Cause: err}
	}
	return tmpl, nil
}
