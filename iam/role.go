package iam

import (
	"fmt"
	"sort"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/stack"
)

// Role is an AWS::IAM::Role construct.
type Role struct {
	node     *construct.Node
	resource *cfn.Resource
	inline   map[string]*PolicyDocument
}

// RoleProps configures a Role.
type RoleProps struct {
	// AssumedBy is the principal of the role's trust policy. Required.
	AssumedBy Principal
	// RoleName pins the physical name; CloudFormation generates one when
	// empty.
	RoleName          string
	Description       string
	Path              string
	ManagedPolicyARNs []string
	InlinePolicies    map[string]*PolicyDocument
	MaxSessionSec     int
}

// NewRole attaches a role under scope. The scope must be inside a stack;
// the trust principal resolves against that stack's environment.
func NewRole(scope construct.Construct, id string, props RoleProps) (*Role, error) {
	if props.AssumedBy == nil {
		return nil, fmt.Errorf("role %q requires an AssumedBy principal", id)
	}
	if props.RoleName != "" && len(props.RoleName) > 64 {
		return nil, fmt.Errorf("role name %q exceeds 64 characters", props.RoleName)
	}

	r := &Role{inline: props.InlinePolicies}
	n, err := construct.NewNode(r, scope, id)
	if err != nil {
		return nil, err
	}
	r.node = n

	st, err := stack.Of(r)
	if err != nil {
		return nil, err
	}
	principal, err := props.AssumedBy.Fragment(st)
	if err != nil {
		return nil, err
	}

	assume := NewPolicyDocument(&PolicyStatement{
		Effect:     Allow,
		Actions:    []string{"sts:AssumeRole"},
		Principals: principal,
	})

	properties := map[string]any{
		"AssumeRolePolicyDocument": assume.Fragment(),
	}
	if props.RoleName != "" {
		properties["RoleName"] = props.RoleName
	}
	if props.Description != "" {
		properties["Description"] = props.Description
	}
	if props.Path != "" {
		properties["Path"] = props.Path
	}
	if len(props.ManagedPolicyARNs) > 0 {
		properties["ManagedPolicyArns"] = anySlice(props.ManagedPolicyARNs)
	}
	if props.MaxSessionSec > 0 {
		properties["MaxSessionDuration"] = props.MaxSessionSec
	}

	res, err := cfn.NewResource(r, "Resource", "AWS::IAM::Role", properties)
	if err != nil {
		return nil, err
	}
	r.resource = res
	return r, nil
}

func (r *Role) Node() *construct.Node { return r.node }

// Arn returns a deferred string for the role's ARN.
func (r *Role) Arn() string { return r.resource.GetAtt("Arn") }

// Name returns a deferred string for the role's physical name.
func (r *Role) Name() string { return r.resource.Ref() }

// AddManagedPolicyArn appends a managed policy attachment.
func (r *Role) AddManagedPolicyArn(arn string) {
	existing, _ := r.resource.Properties["ManagedPolicyArns"].([]any)
	r.resource.Properties["ManagedPolicyArns"] = append(existing, arn)
}

// AddInlinePolicy records an inline policy rendered into the role at
// synthesis.
func (r *Role) AddInlinePolicy(name string, doc *PolicyDocument) {
	if r.inline == nil {
		r.inline = map[string]*PolicyDocument{}
	}
	r.inline[name] = doc
}

// Validate renders inline policies into the role resource and checks them.
// Validation runs before template collection in App.Synth.
func (r *Role) Validate() error {
	if len(r.inline) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.inline))
	for name := range r.inline {
		names = append(names, name)
	}
	sort.Strings(names)
	policies := make([]any, 0, len(names))
	for _, name := range names {
		doc := r.inline[name]
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("inline policy %q: %w", name, err)
		}
		policies = append(policies, map[string]any{
			"PolicyName":     name,
			"PolicyDocument": doc.Fragment(),
		})
	}
	r.resource.Properties["Policies"] = policies
	return nil
}
