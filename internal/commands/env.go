package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/hemantobora/stackcraft/internal/awsdeploy"
)

// Env resolves and prints the current AWS account and region.
func Env(ctx context.Context, w io.Writer, profile string) error {
	session, err := awsdeploy.NewSession(ctx, awsdeploy.WithProfile(profile))
	if err != nil {
		return err
	}
	env, err := session.ResolveEnvironment(ctx)
	if err != nil {
		return fmt.Errorf("credentials are not usable: %w", err)
	}
	fmt.Fprintf(w, "✅ Credentials resolved\n")
	fmt.Fprintf(w, "   Account: %s\n", env.Account)
	fmt.Fprintf(w, "   Region:  %s\n", env.Region)
	fmt.Fprintf(w, "   Caller:  %s\n", env.Arn)
	fmt.Fprintf(w, "\n💡 Pin stacks to this environment with %s=%s %s=%s\n",
		"STACKCRAFT_DEFAULT_ACCOUNT", env.Account,
		"STACKCRAFT_DEFAULT_REGION", env.Region)
	return nil
}
