package cfn

import (
	"fmt"

	"github.com/hemantobora/stackcraft/construct"
)

// Mapping is a template Mappings entry: a two-level lookup table from a
// top-level key (typically a region) and a second-level key to a literal.
// Cells are last-write-wins within one synthesis.
type Mapping struct {
	node *construct.Node
	rows map[string]map[string]any
}

// NewMapping attaches an empty mapping under scope.
func NewMapping(scope construct.Construct, id string) (*Mapping, error) {
	m := &Mapping{rows: map[string]map[string]any{}}
	n, err := construct.NewNode(m, scope, id)
	if err != nil {
		return nil, err
	}
	m.node = n
	return m, nil
}

func (m *Mapping) Node() *construct.Node { return m.node }

// LogicalID returns the mapping's template logical ID.
func (m *Mapping) LogicalID() string { return construct.LogicalID(m) }

// SetValue sets the cell at (topKey, secondKey), overwriting any prior
// value.
func (m *Mapping) SetValue(topKey, secondKey string, value any) {
	row, ok := m.rows[topKey]
	if !ok {
		row = map[string]any{}
		m.rows[topKey] = row
	}
	row[secondKey] = value
}

// FindInMap returns a deferred string that resolves, at deployment time, to
// the cell at (topKey, secondKey). topKey may itself be a deferred value.
func (m *Mapping) FindInMap(topKey any, secondKey string) string {
	return FindInMap(m.LogicalID(), topKey, secondKey)
}

// AddToTemplate writes the mapping into the template.
func (m *Mapping) AddToTemplate(t *Template) error {
	id := m.LogicalID()
	if t.hasLogicalID(id) {
		return fmt.Errorf("duplicate logical ID %q (mapping at %s)", id, m.node.Path())
	}
	body := make(map[string]any, len(m.rows))
	for topKey, row := range m.rows {
		cells := make(map[string]any, len(row))
		for k, v := range row {
			cells[k] = v
		}
		body[topKey] = cells
	}
	t.addMapping(id, body)
	return nil
}

// Validate rejects empty mappings; CloudFormation does the same.
func (m *Mapping) Validate() error {
	if len(m.rows) == 0 {
		return fmt.Errorf("mapping has no values")
	}
	return nil
}
