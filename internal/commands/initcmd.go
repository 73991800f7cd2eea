package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// InitOptions configures project scaffolding. Empty fields are prompted
// for interactively.
type InitOptions struct {
	Name      string
	Dir       string
	StackName string
}

// Init scaffolds a minimal stackcraft app.
func Init(w io.Writer, opts InitOptions) error {
	if opts.Name == "" {
		prompt := &survey.Input{
			Message: "Project name:",
			Default: "my-infra",
		}
		if err := survey.AskOne(prompt, &opts.Name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	if opts.StackName == "" {
		prompt := &survey.Input{
			Message: "Stack name:",
			Default: "AppStack",
		}
		if err := survey.AskOne(prompt, &opts.StackName); err != nil {
			return err
		}
	}
	if opts.Dir == "" {
		opts.Dir = opts.Name
	}

	if _, err := os.Stat(opts.Dir); err == nil {
		overwrite := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Directory '%s' exists. Write into it anyway?", opts.Dir),
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("init cancelled")
		}
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	main := renderMainGo(opts.StackName)
	if err := os.WriteFile(filepath.Join(opts.Dir, "main.go"), []byte(main), 0o644); err != nil {
		return fmt.Errorf("failed to write main.go: %w", err)
	}
	gomod := fmt.Sprintf("module %s\n\ngo 1.22\n\nrequire github.com/hemantobora/stackcraft v0.1.0\n",
		strings.ToLower(opts.Name))
	if err := os.WriteFile(filepath.Join(opts.Dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		return fmt.Errorf("failed to write go.mod: %w", err)
	}

	fmt.Fprintf(w, "✅ Scaffolded %s/\n", opts.Dir)
	fmt.Fprintln(w, "   main.go   — example app (role + deployment group)")
	fmt.Fprintln(w, "   go.mod")
	fmt.Fprintf(w, "\n💡 Next: cd %s && go run . && stackcraft ls\n", opts.Dir)
	return nil
}

func renderMainGo(stackName string) string {
	return strings.ReplaceAll(`package main

import (
	"log"

	"github.com/hemantobora/stackcraft/deploy"
	"github.com/hemantobora/stackcraft/iam"
	"github.com/hemantobora/stackcraft/stack"
)

func main() {
	app := stack.NewApp()
	s, err := stack.New(app, "STACK_NAME", stack.Props{
		Description: "Scaffolded by stackcraft init",
	})
	if err != nil {
		log.Fatal(err)
	}

	role, err := iam.NewRole(s, "DeployRole", iam.RoleProps{
		AssumedBy: iam.NewServicePrincipal("codedeploy.amazonaws.com"),
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := deploy.NewDeploymentGroup(s, "Fleet", deploy.DeploymentGroupProps{
		ServiceRole:  role,
		AutoRollback: true,
	}); err != nil {
		log.Fatal(err)
	}

	if _, err := app.Synth(); err != nil {
		log.Fatal(err)
	}
}
`, "STACK_NAME", stackName)
}
