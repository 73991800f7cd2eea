// Package deploy models CodeDeploy applications and deployment groups as
// constructs.
package deploy

import (
	"fmt"
	"sort"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/iam"
)

// DeploymentConfig names a CodeDeploy rollout strategy.
type DeploymentConfig string

// Predefined server deployment configurations.
const (
	AllAtOnce   DeploymentConfig = "CodeDeployDefault.AllAtOnce"
	HalfAtATime DeploymentConfig = "CodeDeployDefault.HalfAtATime"
	OneAtATime  DeploymentConfig = "CodeDeployDefault.OneAtATime"
)

// DeploymentGroup is an AWS::CodeDeploy::Application plus its
// AWS::CodeDeploy::DeploymentGroup.
type DeploymentGroup struct {
	node        *construct.Node
	application *cfn.Resource
	group       *cfn.Resource
}

// DeploymentGroupProps configures a DeploymentGroup.
type DeploymentGroupProps struct {
	// ApplicationName pins the CodeDeploy application name; generated when
	// empty.
	ApplicationName string
	// ServiceRole is the role CodeDeploy assumes. Required.
	ServiceRole *iam.Role
	// Config defaults to OneAtATime.
	Config DeploymentConfig
	// AutoRollback enables rollback on deployment failure.
	AutoRollback bool
	// EC2TagFilters selects target instances by tag key/value.
	EC2TagFilters map[string]string
}

// NewDeploymentGroup attaches a deployment group under scope.
func NewDeploymentGroup(scope construct.Construct, id string, props DeploymentGroupProps) (*DeploymentGroup, error) {
	if props.ServiceRole == nil {
		return nil, fmt.Errorf("deployment group %q requires a service role", id)
	}
	config := props.Config
	if config == "" {
		config = OneAtATime
	}

	g := &DeploymentGroup{}
	n, err := construct.NewNode(g, scope, id)
	if err != nil {
		return nil, err
	}
	g.node = n

	appProps := map[string]any{"ComputePlatform": "Server"}
	if props.ApplicationName != "" {
		appProps["ApplicationName"] = props.ApplicationName
	}
	application, err := cfn.NewResource(g, "Application", "AWS::CodeDeploy::Application", appProps)
	if err != nil {
		return nil, err
	}
	g.application = application

	groupProps := map[string]any{
		"ApplicationName":      application.Ref(),
		"ServiceRoleArn":       props.ServiceRole.Arn(),
		"DeploymentConfigName": string(config),
	}
	if props.AutoRollback {
		groupProps["AutoRollbackConfiguration"] = map[string]any{
			"Enabled": true,
			"Events":  []any{"DEPLOYMENT_FAILURE"},
		}
	}
	if len(props.EC2TagFilters) > 0 {
		groupProps["Ec2TagFilters"] = tagFilters(props.EC2TagFilters)
	}
	group, err := cfn.NewResource(g, "Group", "AWS::CodeDeploy::DeploymentGroup", groupProps)
	if err != nil {
		return nil, err
	}
	group.AddDependency(application)
	g.group = group
	return g, nil
}

func (g *DeploymentGroup) Node() *construct.Node { return g.node }

// ApplicationRef returns a deferred string for the application name.
func (g *DeploymentGroup) ApplicationRef() string { return g.application.Ref() }

// GroupRef returns a deferred string for the deployment group name.
func (g *DeploymentGroup) GroupRef() string { return g.group.Ref() }

func tagFilters(tags map[string]string) []any {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, map[string]any{
			"Key":   k,
			"Value": tags[k],
			"Type":  "KEY_AND_VALUE",
		})
	}
	return out
}
