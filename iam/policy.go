// Package iam models IAM roles and policies as constructs that synthesize
// into template resources.
package iam

import (
	"fmt"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
)

// PolicyDocumentVersion is the current IAM policy language version.
const PolicyDocumentVersion = "2012-10-17"

// Effect is a statement's Allow/Deny disposition.
type Effect string

const (
	Allow Effect = "Allow"
	Deny  Effect = "Deny"
)

// PolicyStatement is one statement of a policy document.
type PolicyStatement struct {
	Sid        string
	Effect     Effect // defaults to Allow
	Actions    []string
	Resources  []string
	Principals map[string]any
	Conditions map[string]any
}

// Fragment renders the statement as a template fragment.
func (s *PolicyStatement) Fragment() map[string]any {
	effect := s.Effect
	if effect == "" {
		effect = Allow
	}
	out := map[string]any{"Effect": string(effect)}
	if s.Sid != "" {
		out["Sid"] = s.Sid
	}
	if len(s.Actions) > 0 {
		out["Action"] = anySlice(s.Actions)
	}
	if len(s.Resources) > 0 {
		out["Resource"] = anySlice(s.Resources)
	}
	if len(s.Principals) > 0 {
		out["Principal"] = s.Principals
	}
	if len(s.Conditions) > 0 {
		out["Condition"] = s.Conditions
	}
	return out
}

func (s *PolicyStatement) validate() error {
	if s.Effect != "" && s.Effect != Allow && s.Effect != Deny {
		return fmt.Errorf("statement effect must be Allow or Deny, got %q", s.Effect)
	}
	if len(s.Actions) == 0 {
		return fmt.Errorf("statement requires at least one action")
	}
	return nil
}

func anySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// PolicyDocument is an ordered collection of statements.
type PolicyDocument struct {
	statements []*PolicyStatement
}

// NewPolicyDocument returns a document over the given statements.
func NewPolicyDocument(statements ...*PolicyStatement) *PolicyDocument {
	return &PolicyDocument{statements: statements}
}

// AddStatements appends statements to the document.
func (d *PolicyDocument) AddStatements(statements ...*PolicyStatement) {
	d.statements = append(d.statements, statements...)
}

// IsEmpty reports whether the document has no statements.
func (d *PolicyDocument) IsEmpty() bool { return len(d.statements) == 0 }

// Fragment renders the document as a template fragment.
func (d *PolicyDocument) Fragment() map[string]any {
	stmts := make([]any, len(d.statements))
	for i, s := range d.statements {
		stmts[i] = s.Fragment()
	}
	return map[string]any{
		"Version":   PolicyDocumentVersion,
		"Statement": stmts,
	}
}

// Validate checks every statement.
func (d *PolicyDocument) Validate() error {
	if d.IsEmpty() {
		return fmt.Errorf("policy document has no statements")
	}
	for i, s := range d.statements {
		if err := s.validate(); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

// Policy is a standalone AWS::IAM::Policy attached to one or more roles.
type Policy struct {
	node     *construct.Node
	resource *cfn.Resource
	document *PolicyDocument
}

// PolicyProps configures a Policy.
type PolicyProps struct {
	PolicyName string
	Document   *PolicyDocument
	Roles      []*Role
}

// NewPolicy attaches a policy under scope.
func NewPolicy(scope construct.Construct, id string, props PolicyProps) (*Policy, error) {
	if props.Document == nil {
		return nil, fmt.Errorf("policy %q requires a document", id)
	}
	if len(props.Roles) == 0 {
		return nil, fmt.Errorf("policy %q must be attached to at least one role", id)
	}
	name := props.PolicyName
	if name == "" {
		name = id
	}
	roleRefs := make([]any, len(props.Roles))
	for i, r := range props.Roles {
		roleRefs[i] = r.Name()
	}

	p := &Policy{document: props.Document}
	n, err := construct.NewNode(p, scope, id)
	if err != nil {
		return nil, err
	}
	p.node = n

	res, err := cfn.NewResource(p, "Resource", "AWS::IAM::Policy", map[string]any{
		"PolicyName":     name,
		"PolicyDocument": props.Document.Fragment(),
		"Roles":          roleRefs,
	})
	if err != nil {
		return nil, err
	}
	p.resource = res
	return p, nil
}

func (p *Policy) Node() *construct.Node { return p.node }

// Validate re-renders the document so statements added after construction
// are picked up, then checks it. Validation runs before template collection
// in App.Synth.
func (p *Policy) Validate() error {
	p.resource.Properties["PolicyDocument"] = p.document.Fragment()
	return p.document.Validate()
}
