// Package cfn models CloudFormation templates and their elements as
// constructs. Elements register themselves on the tree; a stack collects
// them into a Template document at synthesis time.
package cfn

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/hemantobora/stackcraft/construct"
)

// FormatVersion is the only template format version CloudFormation accepts.
const FormatVersion = "2010-09-09"

// Template is one CloudFormation template document.
type Template struct {
	AWSTemplateFormatVersion string         `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string         `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]any `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Mappings                 map[string]any `json:"Mappings,omitempty" yaml:"Mappings,omitempty"`
	Conditions               map[string]any `json:"Conditions,omitempty" yaml:"Conditions,omitempty"`
	Resources                map[string]any `json:"Resources,omitempty" yaml:"Resources,omitempty"`
	Outputs                  map[string]any `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// NewTemplate returns an empty template document.
func NewTemplate() *Template {
	return &Template{AWSTemplateFormatVersion: FormatVersion}
}

// Element is a construct that contributes a section entry to a template.
type Element interface {
	construct.Construct
	AddToTemplate(t *Template) error
}

// EncodeJSON renders the template as indented JSON. encoding/json sorts
// map keys, so output is deterministic for a given document.
func (t *Template) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// EncodeYAML renders the template as YAML.
func (t *Template) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(t)
}

func (t *Template) addParameter(id string, body any) { t.Parameters = put(t.Parameters, id, body) }
func (t *Template) addMapping(id string, body any)   { t.Mappings = put(t.Mappings, id, body) }
func (t *Template) addResource(id string, body any)  { t.Resources = put(t.Resources, id, body) }
func (t *Template) addOutput(id string, body any)    { t.Outputs = put(t.Outputs, id, body) }
func (t *Template) addCondition(id string, body any) { t.Conditions = put(t.Conditions, id, body) }

func put(section map[string]any, id string, body any) map[string]any {
	if section == nil {
		section = map[string]any{}
	}
	section[id] = body
	return section
}

// hasLogicalID reports whether any section already carries the given
// logical ID.
func (t *Template) hasLogicalID(id string) bool {
	for _, section := range []map[string]any{
		t.Parameters, t.Mappings, t.Conditions, t.Resources, t.Outputs,
	} {
		if _, ok := section[id]; ok {
			return true
		}
	}
	return false
}
