package stack

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/hemantobora/stackcraft/construct"
)

// DefaultOutdir is where Synth writes the cloud assembly unless overridden.
const DefaultOutdir = "stackcraft.out"

// App is the root of a construct tree.
type App struct {
	node   *construct.Node
	fs     afero.Fs
	outdir string
	logger hclog.Logger
}

// AppOption configures a new App.
type AppOption func(*App)

// WithOutdir overrides the assembly output directory.
func WithOutdir(dir string) AppOption {
	return func(a *App) { a.outdir = dir }
}

// WithFs overrides the filesystem the assembly is written to. Tests use an
// in-memory filesystem.
func WithFs(fs afero.Fs) AppOption {
	return func(a *App) { a.fs = fs }
}

// WithLogger overrides the synthesis logger.
func WithLogger(logger hclog.Logger) AppOption {
	return func(a *App) { a.logger = logger }
}

// NewApp returns a root construct.
func NewApp(opts ...AppOption) *App {
	a := &App{
		fs:     afero.NewOsFs(),
		outdir: DefaultOutdir,
		logger: hclog.New(&hclog.LoggerOptions{Name: "stackcraft"}),
	}
	for _, opt := range opts {
		opt(a)
	}
	n, err := construct.NewNode(a, nil, "")
	if err != nil {
		// Root node creation cannot fail.
		panic(err)
	}
	a.node = n
	return a
}

func (a *App) Node() *construct.Node { return a.node }

// Stacks returns the app's stacks in attachment order.
func (a *App) Stacks() []*Stack {
	var out []*Stack
	for _, child := range a.node.Children() {
		if s, ok := child.(*Stack); ok {
			out = append(out, s)
		}
	}
	return out
}

// Synth validates the tree, synthesizes every stack, and writes the cloud
// assembly. All validation failures are reported together before any
// template is rendered.
func (a *App) Synth() (*Assembly, error) {
	if err := construct.ValidateTree(a); err != nil {
		return nil, fmt.Errorf("construct tree failed validation:\n%w", err)
	}

	stacks := a.Stacks()
	if len(stacks) == 0 {
		return nil, fmt.Errorf("app has no stacks to synthesize")
	}

	asm := newAssembly(a.fs, a.outdir)
	for _, s := range stacks {
		a.logger.Debug("synthesizing stack", "stack", s.Name())
		tmpl, err := s.synthesize()
		if err != nil {
			return nil, err
		}
		if err := asm.addStack(s, tmpl); err != nil {
			return nil, &SynthError{Stack: s.Name(), Phase: "write", Cause: err}
		}
	}

	if err := asm.finalize(a); err != nil {
		return nil, fmt.Errorf("failed to write assembly: %w", err)
	}
	a.logger.Info("assembly written", "dir", a.outdir, "stacks", len(stacks))
	return asm, nil
}
