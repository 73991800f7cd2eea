package cfn

import (
	"fmt"

	"github.com/hemantobora/stackcraft/construct"
)

// Resource is a template resource declaration hosted on the construct tree.
type Resource struct {
	node *construct.Node

	Type           string
	Properties     map[string]any
	DependsOn      []string
	Condition      string
	DeletionPolicy string
	Metadata       map[string]any
}

// NewResource attaches a resource of the given CloudFormation type under
// scope.
func NewResource(scope construct.Construct, id, resourceType string, properties map[string]any) (*Resource, error) {
	if resourceType == "" {
		return nil, fmt.Errorf("resource %q requires a type", id)
	}
	r := &Resource{Type: resourceType, Properties: properties}
	n, err := construct.NewNode(r, scope, id)
	if err != nil {
		return nil, err
	}
	r.node = n
	return r, nil
}

func (r *Resource) Node() *construct.Node { return r.node }

// LogicalID returns the resource's template logical ID.
func (r *Resource) LogicalID() string { return construct.LogicalID(r) }

// Ref returns a deferred string that resolves to {"Ref": <logical ID>}.
func (r *Resource) Ref() string { return Ref(r.LogicalID()) }

// GetAtt returns a deferred string for one of the resource's attributes.
func (r *Resource) GetAtt(attribute string) string {
	return GetAtt(r.LogicalID(), attribute)
}

// AddDependency records an explicit DependsOn edge to another resource.
func (r *Resource) AddDependency(other *Resource) {
	r.DependsOn = append(r.DependsOn, other.LogicalID())
}

// AddToTemplate writes the resource declaration into the template.
func (r *Resource) AddToTemplate(t *Template) error {
	id := r.LogicalID()
	if t.hasLogicalID(id) {
		return fmt.Errorf("duplicate logical ID %q (resource at %s)", id, r.node.Path())
	}
	body := map[string]any{"Type": r.Type}
	if len(r.Properties) > 0 {
		body["Properties"] = r.Properties
	}
	if len(r.DependsOn) > 0 {
		body["DependsOn"] = r.DependsOn
	}
	if r.Condition != "" {
		body["Condition"] = r.Condition
	}
	if r.DeletionPolicy != "" {
		body["DeletionPolicy"] = r.DeletionPolicy
	}
	if len(r.Metadata) > 0 {
		body["Metadata"] = r.Metadata
	}
	t.addResource(id, body)
	return nil
}

// Validate checks the declaration before synthesis.
func (r *Resource) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("resource requires a type")
	}
	return nil
}
