package awsdeploy

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/hemantobora/stackcraft/stack"
)

// PublishedTemplate records where one template landed.
type PublishedTemplate struct {
	StackName string
	Key       string
	URL       string
}

// Publish uploads every template of an assembly to the bootstrap bucket,
// keyed under the assembly's run ID.
func (s *Session) Publish(ctx context.Context, fs afero.Fs, assemblyDir string) ([]PublishedTemplate, error) {
	asm, err := stack.LoadAssembly(fs, assemblyDir)
	if err != nil {
		return nil, err
	}
	env, err := s.ResolveEnvironment(ctx)
	if err != nil {
		return nil, err
	}
	bucket := BucketName(env.Account, env.Region)
	client := s3.NewFromConfig(s.Config)

	var out []PublishedTemplate
	for _, rec := range asm.Manifest.Stacks {
		data, err := afero.ReadFile(fs, path.Join(assemblyDir, rec.TemplateFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read template for stack '%s': %w", rec.Name, err)
		}
		key := path.Join("assemblies", asm.Manifest.RunID, rec.TemplateFile)
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return nil, &OperationError{Operation: "publish", Resource: bucket + "/" + key, Cause: err}
		}
		out = append(out, PublishedTemplate{
			StackName: rec.Name,
			Key:       key,
			URL:       fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, env.Region, key),
		})
	}
	return out, nil
}
