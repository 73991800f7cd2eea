package cfn

import (
	"fmt"

	"github.com/hemantobora/stackcraft/construct"
)

// Parameter is a template Parameters entry.
type Parameter struct {
	node *construct.Node

	Type          string
	Description   string
	Default       any
	AllowedValues []any
	NoEcho        bool
}

// ParameterProps configures a Parameter. Type defaults to String.
type ParameterProps struct {
	Type          string
	Description   string
	Default       any
	AllowedValues []any
	NoEcho        bool
}

// NewParameter attaches a parameter under scope.
func NewParameter(scope construct.Construct, id string, props ParameterProps) (*Parameter, error) {
	if props.Type == "" {
		props.Type = "String"
	}
	p := &Parameter{
		Type:          props.Type,
		Description:   props.Description,
		Default:       props.Default,
		AllowedValues: props.AllowedValues,
		NoEcho:        props.NoEcho,
	}
	n, err := construct.NewNode(p, scope, id)
	if err != nil {
		return nil, err
	}
	p.node = n
	return p, nil
}

func (p *Parameter) Node() *construct.Node { return p.node }

// LogicalID returns the parameter's template logical ID.
func (p *Parameter) LogicalID() string { return construct.LogicalID(p) }

// Value returns a deferred string referencing the parameter's value.
func (p *Parameter) Value() string { return Ref(p.LogicalID()) }

// AddToTemplate writes the parameter declaration into the template.
func (p *Parameter) AddToTemplate(t *Template) error {
	id := p.LogicalID()
	if t.hasLogicalID(id) {
		return fmt.Errorf("duplicate logical ID %q (parameter at %s)", id, p.node.Path())
	}
	body := map[string]any{"Type": p.Type}
	if p.Description != "" {
		body["Description"] = p.Description
	}
	if p.Default != nil {
		body["Default"] = p.Default
	}
	if len(p.AllowedValues) > 0 {
		body["AllowedValues"] = p.AllowedValues
	}
	if p.NoEcho {
		body["NoEcho"] = true
	}
	t.addParameter(id, body)
	return nil
}
