// Package helm models a Helm chart release as a custom resource handled by
// a provider Lambda at deployment time.
package helm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
)

// ResourceType is the custom resource type the provider handles.
const ResourceType = "Custom::StackcraftHelmChart"

// Helm release names are capped at 53 characters.
const maxReleaseNameLen = 53

// Chart is a Helm chart release construct.
type Chart struct {
	node     *construct.Node
	resource *cfn.Resource
	values   map[string]any
}

// ChartProps configures a Chart.
type ChartProps struct {
	// ServiceToken is the ARN of the provider handling the custom
	// resource. Required.
	ServiceToken string
	// Chart is the chart name. Required.
	Chart      string
	Repository string
	Version    string
	// Namespace defaults to "default".
	Namespace string
	// ReleaseName pins the release name; derived from the construct path
	// when empty.
	ReleaseName string
	Values      map[string]any
}

// NewChart attaches a chart release under scope.
func NewChart(scope construct.Construct, id string, props ChartProps) (*Chart, error) {
	if props.ServiceToken == "" {
		return nil, fmt.Errorf("chart %q requires a provider service token", id)
	}
	if props.Chart == "" {
		return nil, fmt.Errorf("chart %q requires a chart name", id)
	}
	namespace := props.Namespace
	if namespace == "" {
		namespace = "default"
	}

	c := &Chart{values: props.Values}
	n, err := construct.NewNode(c, scope, id)
	if err != nil {
		return nil, err
	}
	c.node = n

	release := props.ReleaseName
	if release == "" {
		release = releaseNameFromPath(n.PathSegments())
	}

	properties := map[string]any{
		"ServiceToken": props.ServiceToken,
		"Chart":        props.Chart,
		"Release":      release,
		"Namespace":    namespace,
	}
	if props.Repository != "" {
		properties["Repository"] = props.Repository
	}
	if props.Version != "" {
		properties["Version"] = props.Version
	}

	res, err := cfn.NewResource(c, "Resource", ResourceType, properties)
	if err != nil {
		return nil, err
	}
	c.resource = res
	return c, nil
}

func (c *Chart) Node() *construct.Node { return c.node }

// SetValue overrides one chart value for the release.
func (c *Chart) SetValue(key string, value any) {
	if c.values == nil {
		c.values = map[string]any{}
	}
	c.values[key] = value
}

// Validate serializes the values to YAML and renders them into the
// resource. Validation runs before template collection in App.Synth.
func (c *Chart) Validate() error {
	if len(c.values) == 0 {
		return nil
	}
	data, err := yaml.Marshal(c.values)
	if err != nil {
		return fmt.Errorf("chart values are not serializable: %w", err)
	}
	c.resource.Properties["Values"] = string(data)
	return nil
}

// releaseNameFromPath derives a valid release name from the construct
// path: lowercased, restricted to [a-z0-9-], truncated with a digest
// suffix when over the Helm limit.
func releaseNameFromPath(segs []string) string {
	joined := strings.ToLower(strings.Join(segs, "-"))
	var b strings.Builder
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	if len(name) <= maxReleaseNameLen {
		return name
	}
	sum := sha256.Sum256([]byte(strings.Join(segs, "/")))
	suffix := hex.EncodeToString(sum[:])[:8]
	return name[:maxReleaseNameLen-len(suffix)-1] + "-" + suffix
}
