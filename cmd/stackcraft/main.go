package main

import (
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/hemantobora/stackcraft/internal/commands"
	"github.com/hemantobora/stackcraft/stack"
)

func main() {
	app := &cli.App{
		Name:  "stackcraft",
		Usage: "Work with stackcraft cloud assemblies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "AWS credential profile name (e.g., dev, prod)",
			},
			&cli.StringFlag{
				Name:  "app",
				Usage: "Cloud assembly directory",
				Value: stack.DefaultOutdir,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "facts",
				Usage: "Query the built-in region fact database",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "region", Usage: "Limit to one region"},
					&cli.StringFlag{Name: "name", Usage: "Limit to one fact name"},
					&cli.BoolFlag{Name: "json", Usage: "Emit JSON"},
				},
				Action: func(c *cli.Context) error {
					return commands.Facts(os.Stdout, commands.FactsOptions{
						Region: c.String("region"),
						Name:   c.String("name"),
						JSON:   c.Bool("json"),
					})
				},
			},
			{
				Name:  "env",
				Usage: "Resolve the current AWS account and region",
				Action: func(c *cli.Context) error {
					return commands.Env(c.Context, os.Stdout, c.String("profile"))
				},
			},
			{
				Name:  "bootstrap",
				Usage: "Create the template bucket and deployment role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "region", Usage: "Target region (defaults to the profile's region)"},
				},
				Action: func(c *cli.Context) error {
					return commands.Bootstrap(c.Context, os.Stdout, c.String("profile"), c.String("region"))
				},
			},
			{
				Name:  "publish",
				Usage: "Upload an assembly's templates to the bootstrap bucket",
				Action: func(c *cli.Context) error {
					return commands.Publish(c.Context, os.Stdout, c.String("profile"), c.String("app"))
				},
			},
			{
				Name:  "ls",
				Usage: "List the stacks of an assembly",
				Action: func(c *cli.Context) error {
					return commands.List(os.Stdout, afero.NewOsFs(), c.String("app"))
				},
			},
			{
				Name:  "tree",
				Usage: "Render the construct tree of an assembly",
				Action: func(c *cli.Context) error {
					return commands.Tree(os.Stdout, afero.NewOsFs(), c.String("app"))
				},
			},
			{
				Name:  "validate",
				Usage: "Check assembly templates against CloudFormation limits",
				Action: func(c *cli.Context) error {
					return commands.Validate(os.Stdout, afero.NewOsFs(), c.String("app"))
				},
			},
			{
				Name:  "init",
				Usage: "Scaffold an example stackcraft app",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Project name (bypasses the prompt)"},
					&cli.StringFlag{Name: "dir", Usage: "Target directory (defaults to the project name)"},
					&cli.StringFlag{Name: "stack", Usage: "Stack name (bypasses the prompt)"},
				},
				Action: func(c *cli.Context) error {
					return commands.Init(os.Stdout, commands.InitOptions{
						Name:      c.String("name"),
						Dir:       c.String("dir"),
						StackName: c.String("stack"),
					})
				},
			},
		},
		Action: func(c *cli.Context) error {
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
