// Package awsdeploy holds the AWS-side operations behind the CLI:
// credential resolution, bootstrap resources, and template publishing.
package awsdeploy

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Session wraps a resolved AWS configuration.
type Session struct {
	Config aws.Config
}

// SessionOption is a functional option for session configuration.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	profile string
	region  string
}

// WithProfile selects a shared-config profile.
func WithProfile(profile string) SessionOption {
	return func(o *sessionOptions) { o.profile = profile }
}

// WithRegion overrides the resolved region.
func WithRegion(region string) SessionOption {
	return func(o *sessionOptions) { o.region = region }
}

// NewSession loads AWS configuration with the given options.
func NewSession(ctx context.Context, options ...SessionOption) (*Session, error) {
	opts := &sessionOptions{}
	for _, opt := range options {
		opt(opts)
	}

	optFns := []func(*config.LoadOptions) error{}
	if opts.profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(opts.profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, &OperationError{
			Operation: "load-config",
			Resource:  fmt.Sprintf("profile:%s", opts.profile),
			Cause:     fmt.Errorf("failed to load AWS config: %w", err),
		}
	}
	if opts.region != "" {
		cfg.Region = opts.region
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return &Session{Config: cfg}, nil
}

// Environment is the resolved deployment target.
type Environment struct {
	Account string
	Region  string
	Arn     string
}

// ResolveEnvironment returns the caller's account and region via STS.
func (s *Session) ResolveEnvironment(ctx context.Context) (*Environment, error) {
	client := sts.NewFromConfig(s.Config)
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, &OperationError{
			Operation: "resolve-environment",
			Resource:  "sts:GetCallerIdentity",
			Cause:     err,
		}
	}
	return &Environment{
		Account: aws.ToString(out.Account),
		Region:  s.Config.Region,
		Arn:     aws.ToString(out.Arn),
	}, nil
}
