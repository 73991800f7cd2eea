package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/hemantobora/stackcraft/internal/awsdeploy"
)

// Bootstrap ensures the template bucket and deployment role exist in the
// caller's account.
func Bootstrap(ctx context.Context, w io.Writer, profile, region string) error {
	opts := []awsdeploy.SessionOption{awsdeploy.WithProfile(profile)}
	if region != "" {
		opts = append(opts, awsdeploy.WithRegion(region))
	}
	session, err := awsdeploy.NewSession(ctx, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "🔧 Bootstrapping environment...")
	result, err := session.Bootstrap(ctx)
	if err != nil {
		return err
	}

	if result.BucketCreated {
		fmt.Fprintf(w, "✅ Created template bucket: %s\n", result.BucketName)
	} else {
		fmt.Fprintf(w, "✅ Template bucket exists: %s\n", result.BucketName)
	}
	if result.RoleCreated {
		fmt.Fprintf(w, "✅ Created deployment role: %s\n", result.RoleArn)
	} else {
		fmt.Fprintf(w, "✅ Deployment role exists: %s\n", result.RoleArn)
	}
	fmt.Fprintln(w, "\n💡 Publish synthesized templates with 'stackcraft publish'")
	return nil
}
