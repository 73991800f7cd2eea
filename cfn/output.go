package cfn

import (
	"fmt"

	"github.com/hemantobora/stackcraft/construct"
)

// Output is a template Outputs entry.
type Output struct {
	node *construct.Node

	Value       any
	Description string
	ExportName  string
}

// OutputProps configures an Output.
type OutputProps struct {
	Value       any
	Description string
	ExportName  string
}

// NewOutput attaches an output under scope.
func NewOutput(scope construct.Construct, id string, props OutputProps) (*Output, error) {
	o := &Output{
		Value:       props.Value,
		Description: props.Description,
		ExportName:  props.ExportName,
	}
	n, err := construct.NewNode(o, scope, id)
	if err != nil {
		return nil, err
	}
	o.node = n
	return o, nil
}

func (o *Output) Node() *construct.Node { return o.node }

// LogicalID returns the output's template logical ID.
func (o *Output) LogicalID() string { return construct.LogicalID(o) }

// AddToTemplate writes the output declaration into the template.
func (o *Output) AddToTemplate(t *Template) error {
	id := o.LogicalID()
	if t.hasLogicalID(id) {
		return fmt.Errorf("duplicate logical ID %q (output at %s)", id, o.node.Path())
	}
	body := map[string]any{"Value": o.Value}
	if o.Description != "" {
		body["Description"] = o.Description
	}
	if o.ExportName != "" {
		body["Export"] = map[string]any{"Name": o.ExportName}
	}
	t.addOutput(id, body)
	return nil
}

// Validate rejects outputs without a value.
func (o *Output) Validate() error {
	if o.Value == nil {
		return fmt.Errorf("output requires a value")
	}
	return nil
}
