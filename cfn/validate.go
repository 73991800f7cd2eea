package cfn

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CloudFormation service quotas relevant to synthesized output.
const (
	// MaxTemplateBytes is the size limit for templates delivered via S3.
	MaxTemplateBytes = 1_000_000
	// MaxMappings is the per-template mapping count quota.
	MaxMappings = 200
	// MaxMappingAttributes is the per-mapping attribute (top-level key)
	// quota.
	MaxMappingAttributes = 200
	// MaxParameters is the per-template parameter quota.
	MaxParameters = 200
	// MaxResources is the per-template resource quota.
	MaxResources = 500
	// MaxOutputs is the per-template output quota.
	MaxOutputs = 200
)

// CheckLimits verifies the document against CloudFormation quotas and
// returns all violations at once.
func (t *Template) CheckLimits() error {
	var result *multierror.Error
	if n := len(t.Mappings); n > MaxMappings {
		result = multierror.Append(result, fmt.Errorf("template has %d mappings, limit is %d", n, MaxMappings))
	}
	for id, body := range t.Mappings {
		if rows, ok := body.(map[string]any); ok && len(rows) > MaxMappingAttributes {
			result = multierror.Append(result, fmt.Errorf("mapping %q has %d top-level keys, limit is %d", id, len(rows), MaxMappingAttributes))
		}
	}
	if n := len(t.Parameters); n > MaxParameters {
		result = multierror.Append(result, fmt.Errorf("template has %d parameters, limit is %d", n, MaxParameters))
	}
	if n := len(t.Resources); n > MaxResources {
		result = multierror.Append(result, fmt.Errorf("template has %d resources, limit is %d", n, MaxResources))
	}
	if n := len(t.Outputs); n > MaxOutputs {
		result = multierror.Append(result, fmt.Errorf("template has %d outputs, limit is %d", n, MaxOutputs))
	}
	return result.ErrorOrNil()
}

// ValidateTemplateBytes parses an encoded template and checks structure and
// quotas. Used by the CLI against assemblies produced elsewhere.
func ValidateTemplateBytes(data []byte) error {
	if len(data) > MaxTemplateBytes {
		return fmt.Errorf("template is %d bytes, limit is %d", len(data), MaxTemplateBytes)
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("template is not valid JSON: %w", err)
	}
	if t.AWSTemplateFormatVersion != "" && t.AWSTemplateFormatVersion != FormatVersion {
		return fmt.Errorf("unsupported template format version %q", t.AWSTemplateFormatVersion)
	}
	if len(t.Resources) == 0 && len(t.Mappings) == 0 && len(t.Outputs) == 0 {
		return fmt.Errorf("template declares no resources, mappings, or outputs")
	}
	return t.CheckLimits()
}
