package helm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hemantobora/stackcraft/stack"
)

func TestChartSynthesizes(t *testing.T) {
	fs := afero.NewMemMapFs()
	app := stack.NewApp(stack.WithFs(fs), stack.WithOutdir("out"))
	s, err := stack.New(app, "Cluster", stack.Props{})
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	chart, err := NewChart(s, "Ingress", ChartProps{
		ServiceToken: "arn:aws:lambda:us-east-1:123456789012:function:helm-provider",
		Chart:        "ingress-nginx",
		Repository:   "https://kubernetes.github.io/ingress-nginx",
		Version:      "4.10.0",
		Values:       map[string]any{"controller": map[string]any{"replicaCount": 2}},
	})
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	chart.SetValue("fullnameOverride", "ingress")

	asm, err := app.Synth()
	if err != nil {
		t.Fatalf("synth: %v", err)
	}
	data, err := asm.Template("Cluster")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	var tmpl map[string]any
	if err := json.Unmarshal(data, &tmpl); err != nil {
		t.Fatalf("json: %v", err)
	}

	var props map[string]any
	for _, body := range tmpl["Resources"].(map[string]any) {
		b := body.(map[string]any)
		if b["Type"] == ResourceType {
			props = b["Properties"].(map[string]any)
		}
	}
	if props == nil {
		t.Fatal("no chart resource in template")
	}
	if props["Release"] != "cluster-ingress" {
		t.Errorf("release = %v", props["Release"])
	}
	if props["Namespace"] != "default" {
		t.Errorf("namespace = %v", props["Namespace"])
	}

	var values map[string]any
	if err := yaml.Unmarshal([]byte(props["Values"].(string)), &values); err != nil {
		t.Fatalf("values are not YAML: %v", err)
	}
	if values["fullnameOverride"] != "ingress" {
		t.Errorf("values = %v", values)
	}
	controller := values["controller"].(map[string]any)
	if controller["replicaCount"] != 2 {
		t.Errorf("controller values = %v", controller)
	}
}

func TestChartRequiredProps(t *testing.T) {
	app := stack.NewApp(stack.WithFs(afero.NewMemMapFs()))
	s, _ := stack.New(app, "Cluster", stack.Props{})
	if _, err := NewChart(s, "A", ChartProps{Chart: "x"}); err == nil {
		t.Error("expected error without service token")
	}
	if _, err := NewChart(s, "B", ChartProps{ServiceToken: "arn"}); err == nil {
		t.Error("expected error without chart name")
	}
}

func TestReleaseNameDerivation(t *testing.T) {
	got := releaseNameFromPath([]string{"Cluster", "My.App", "Ingress"})
	if got != "cluster-my-app-ingress" {
		t.Errorf("got %q", got)
	}
	long := releaseNameFromPath([]string{strings.Repeat("verylongsegment", 8)})
	if len(long) > 53 {
		t.Errorf("release name too long: %d", len(long))
	}
	if !strings.Contains(long, "-") {
		t.Errorf("expected digest suffix in %q", long)
	}
}
