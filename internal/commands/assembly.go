package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/spf13/afero"
	"github.com/xlab/treeprint"

	"github.com/hemantobora/stackcraft/cfn"
	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/stack"
)

// List prints the stacks of an assembly.
func List(w io.Writer, fs afero.Fs, assemblyDir string) error {
	asm, err := stack.LoadAssembly(fs, assemblyDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "📋 Assembly %s (run %s)\n", assemblyDir, asm.Manifest.RunID)
	for _, rec := range asm.Manifest.Stacks {
		target := "environment-agnostic"
		if rec.Account != "" || rec.Region != "" {
			target = fmt.Sprintf("%s/%s", rec.Account, rec.Region)
		}
		fmt.Fprintf(w, "   %-24s %-32s %s\n", rec.Name, rec.TemplateFile, target)
	}
	return nil
}

// Tree renders the construct tree recorded with an assembly.
func Tree(w io.Writer, fs afero.Fs, assemblyDir string) error {
	asm, err := stack.LoadAssembly(fs, assemblyDir)
	if err != nil {
		return err
	}
	data, err := asm.TreeJSON()
	if err != nil {
		return fmt.Errorf("assembly has no tree.json: %w", err)
	}
	var root construct.TreeNode
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("tree.json is corrupt: %w", err)
	}

	label := root.ID
	if label == "" {
		label = "App"
	}
	printed := treeprint.NewWithRoot(label)
	addTreeBranches(printed, root)
	fmt.Fprint(w, printed.String())
	return nil
}

func addTreeBranches(branch treeprint.Tree, node construct.TreeNode) {
	for _, child := range sortedChildren(node) {
		addTreeBranches(branch.AddBranch(child.ID), child)
	}
}

func sortedChildren(node construct.TreeNode) []construct.TreeNode {
	ids := make([]string, 0, len(node.Children))
	for id := range node.Children {
		ids = append(ids, id)
	}
	// Children serialize as a map; render them in a stable order.
	sort.Strings(ids)
	out := make([]construct.TreeNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, node.Children[id])
	}
	return out
}

// Validate checks every template in an assembly against structural rules
// and CloudFormation quotas.
func Validate(w io.Writer, fs afero.Fs, assemblyDir string) error {
	asm, err := stack.LoadAssembly(fs, assemblyDir)
	if err != nil {
		return err
	}
	failed := 0
	for _, rec := range asm.Manifest.Stacks {
		data, err := afero.ReadFile(fs, path.Join(assemblyDir, rec.TemplateFile))
		if err != nil {
			return fmt.Errorf("failed to read template for stack '%s': %w", rec.Name, err)
		}
		if err := cfn.ValidateTemplateBytes(data); err != nil {
			failed++
			fmt.Fprintf(w, "❌ %s: %v\n", rec.Name, err)
			continue
		}
		fmt.Fprintf(w, "✅ %s (%d bytes)\n", rec.Name, len(data))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d templates failed validation", failed, len(asm.Manifest.Stacks))
	}
	return nil
}
