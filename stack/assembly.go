package stack

import (
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
)

// ManifestVersion identifies the assembly layout.
const ManifestVersion = "1.0"

// Manifest is the assembly's index file.
type Manifest struct {
	Version   string        `json:"version"`
	RunID     string        `json:"runId"`
	CreatedAt time.Time     `json:"createdAt"`
	Stacks    []StackRecord `json:"stacks"`
}

// StackRecord describes one synthesized stack in the manifest.
type StackRecord struct {
	Name         string `json:"name"`
	TemplateFile string `json:"templateFile"`
	Account      string `json:"account,omitempty"`
	Region       string `json:"region,omitempty"`
}

// Assembly is one synthesis run's output directory: manifest.json, one
// template per stack, and tree.json.
type Assembly struct {
	Dir      string
	Manifest Manifest

	fs        afero.Fs
	templates map[string][]byte
}

func newAssembly(fs afero.Fs, dir string) *Assembly {
	return &Assembly{
		Dir: dir,
		Manifest: Manifest{
			Version:   ManifestVersion,
			RunID:     uuid.NewString(),
			CreatedAt: time.Now().UTC(),
		},
		fs:        fs,
		templates: map[string][]byte{},
	}
}

func (a *Assembly) addStack(s *Stack, tmpl *cfn.Template) error {
	data, err := tmpl.EncodeJSON()
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	file := s.Name() + ".template.json"
	a.templates[file] = data
	a.Manifest.Stacks = append(a.Manifest.Stacks, StackRecord{
		Name:         s.Name(),
		TemplateFile: file,
		Account:      s.env.Account,
		Region:       s.env.Region,
	})
	return nil
}

func (a *Assembly) finalize(root construct.Construct) error {
	if err := a.fs.MkdirAll(a.Dir, 0o755); err != nil {
		return err
	}
	for file, data := range a.templates {
		if err := afero.WriteFile(a.fs, path.Join(a.Dir, file), data, 0o644); err != nil {
			return err
		}
	}

	manifest, err := json.MarshalIndent(a.Manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.fs, path.Join(a.Dir, "manifest.json"), manifest, 0o644); err != nil {
		return err
	}

	tree, err := json.MarshalIndent(construct.TreeModel(root), "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(a.fs, path.Join(a.Dir, "tree.json"), tree, 0o644)
}

// Template returns the encoded template for a stack in this assembly.
func (a *Assembly) Template(stackName string) ([]byte, error) {
	for _, rec := range a.Manifest.Stacks {
		if rec.Name == stackName {
			return afero.ReadFile(a.fs, path.Join(a.Dir, rec.TemplateFile))
		}
	}
	return nil, fmt.Errorf("assembly has no stack %q", stackName)
}

// LoadAssembly reads an assembly written by a previous synthesis run.
func LoadAssembly(fs afero.Fs, dir string) (*Assembly, error) {
	data, err := afero.ReadFile(fs, path.Join(dir, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read assembly manifest in %s: %w", dir, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("assembly manifest in %s is corrupt: %w", dir, err)
	}
	return &Assembly{Dir: dir, Manifest: manifest, fs: fs}, nil
}

// TreeJSON returns the serialized construct tree written with the assembly.
func (a *Assembly) TreeJSON() ([]byte, error) {
	return afero.ReadFile(a.fs, path.Join(a.Dir, "tree.json"))
}
