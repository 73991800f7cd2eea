package awsdeploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// BootstrapResult reports what bootstrap created or found.
type BootstrapResult struct {
	BucketName    string
	BucketCreated bool
	RoleName      string
	RoleArn       string
	RoleCreated   bool
}

// BucketName derives the bootstrap bucket name for an account and region.
func BucketName(account, region string) string {
	return fmt.Sprintf("stackcraft-assets-%s-%s", account, region)
}

// DefaultRoleName is the deployment role bootstrap ensures.
const DefaultRoleName = "stackcraft-deploy"

// Bootstrap ensures the template bucket and deployment role exist.
func (s *Session) Bootstrap(ctx context.Context) (*BootstrapResult, error) {
	env, err := s.ResolveEnvironment(ctx)
	if err != nil {
		return nil, err
	}
	result := &BootstrapResult{
		BucketName: BucketName(env.Account, env.Region),
		RoleName:   DefaultRoleName,
	}

	created, err := s.ensureBucket(ctx, result.BucketName)
	if err != nil {
		return nil, err
	}
	result.BucketCreated = created

	arn, createdRole, err := s.ensureRole(ctx, result.RoleName, env.Account)
	if err != nil {
		return nil, err
	}
	result.RoleArn = arn
	result.RoleCreated = createdRole
	return result, nil
}

func (s *Session) ensureBucket(ctx context.Context, bucket string) (bool, error) {
	client := s3.NewFromConfig(s.Config)

	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return false, nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if s.Config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.Config.Region),
		}
	}
	if _, err := client.CreateBucket(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "BucketAlreadyOwnedByYou" {
			return false, nil
		}
		return false, &OperationError{Operation: "bootstrap", Resource: bucket, Cause: err}
	}

	_, err = client.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(bucket),
		VersioningConfiguration: &s3types.VersioningConfiguration{
			Status: s3types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return true, &OperationError{Operation: "bootstrap", Resource: bucket, Cause: err}
	}
	return true, nil
}

func (s *Session) ensureRole(ctx context.Context, roleName, account string) (string, bool, error) {
	client := iam.NewFromConfig(s.Config)

	got, err := client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)})
	if err == nil {
		return aws.ToString(got.Role.Arn), false, nil
	}
	var notFound *iamtypes.NoSuchEntityException
	if !errors.As(err, &notFound) {
		return "", false, &OperationError{Operation: "bootstrap", Resource: roleName, Cause: err}
	}

	trust := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"Service": "cloudformation.amazonaws.com", "AWS": "arn:aws:iam::%s:root"},
    "Action": "sts:AssumeRole"
  }]
}`, account)
	created, err := client.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(trust),
		Description:              aws.String("Deploys stackcraft-synthesized templates"),
	})
	if err != nil {
		return "", false, &OperationError{Operation: "bootstrap", Resource: roleName, Cause: err}
	}
	return aws.ToString(created.Role.Arn), true, nil
}
