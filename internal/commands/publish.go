package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/hemantobora/stackcraft/internal/awsdeploy"
)

// Publish uploads an assembly's templates to the bootstrap bucket.
func Publish(ctx context.Context, w io.Writer, profile, assemblyDir string) error {
	session, err := awsdeploy.NewSession(ctx, awsdeploy.WithProfile(profile))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "📦 Publishing assembly from %s...\n", assemblyDir)
	published, err := session.Publish(ctx, afero.NewOsFs(), assemblyDir)
	if err != nil {
		return err
	}
	for _, p := range published {
		fmt.Fprintf(w, "✅ %s → %s\n", p.StackName, p.URL)
	}
	fmt.Fprintf(w, "\n💡 Deploy with: aws cloudformation create-stack --template-url <url>\n")
	return nil
}
