package cfn

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hemantobora/stackcraft/construct"
	"github.com/hemantobora/stackcraft/token"
)

type scope struct{ node *construct.Node }

func (s *scope) Node() *construct.Node { return s.node }

func newScope(t *testing.T) *scope {
	t.Helper()
	s := &scope{}
	n, err := construct.NewNode(s, nil, "")
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	s.node = n
	return s
}

func TestResourceAddToTemplate(t *testing.T) {
	s := newScope(t)
	r, err := NewResource(s, "Bucket", "AWS::S3::Bucket", map[string]any{
		"BucketName": "example",
	})
	if err != nil {
		t.Fatalf("NewResource: %v", err)
	}
	r.DeletionPolicy = "Retain"

	tmpl := NewTemplate()
	if err := r.AddToTemplate(tmpl); err != nil {
		t.Fatalf("AddToTemplate: %v", err)
	}
	want := map[string]any{
		"Type":           "AWS::S3::Bucket",
		"Properties":     map[string]any{"BucketName": "example"},
		"DeletionPolicy": "Retain",
	}
	if diff := cmp.Diff(want, tmpl.Resources["Bucket"]); diff != "" {
		t.Errorf("resource body mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceRefAndGetAttAreDeferred(t *testing.T) {
	s := newScope(t)
	r, err := NewResource(s, "Role", "AWS::IAM::Role", nil)
	if err != nil {
		t.Fatalf("NewResource: %v", err)
	}
	if !token.IsUnresolved(r.Ref()) {
		t.Error("Ref should be a deferred value")
	}
	got, err := token.Resolve(r.GetAtt("Arn"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := map[string]any{"Fn::GetAtt": []any{"Role", "Arn"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAtt mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateLogicalIDRejected(t *testing.T) {
	s := newScope(t)
	a, _ := NewResource(s, "Thing", "AWS::SNS::Topic", nil)
	tmpl := NewTemplate()
	if err := a.AddToTemplate(tmpl); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := a.AddToTemplate(tmpl); err == nil {
		t.Fatal("expected duplicate logical ID error")
	}
}

func TestMappingCellsLastWriteWins(t *testing.T) {
	s := newScope(t)
	m, err := NewMapping(s, "WidgetMap")
	if err != nil {
		t.Fatalf("NewMapping: %v", err)
	}
	m.SetValue("us-east-1", "alpha", "one")
	m.SetValue("us-east-1", "alpha", "two")
	m.SetValue("eu-west-1", "alpha", "three")

	tmpl := NewTemplate()
	if err := m.AddToTemplate(tmpl); err != nil {
		t.Fatalf("AddToTemplate: %v", err)
	}
	want := map[string]any{
		"us-east-1": map[string]any{"alpha": "two"},
		"eu-west-1": map[string]any{"alpha": "three"},
	}
	if diff := cmp.Diff(want, tmpl.Mappings["WidgetMap"]); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingFindInMapResolvesWithDeferredTopKey(t *testing.T) {
	s := newScope(t)
	m, _ := NewMapping(s, "FactsMap")
	m.SetValue("us-east-1", "endpoint", "e1")

	expr := m.FindInMap(token.Region, "endpoint")
	got, err := token.Resolve(expr)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := map[string]any{"Fn::FindInMap": []any{
		"FactsMap",
		map[string]any{"Ref": "AWS::Region"},
		"endpoint",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindInMap mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyMappingFailsValidation(t *testing.T) {
	s := newScope(t)
	m, _ := NewMapping(s, "Empty")
	if err := m.Validate(); err == nil {
		t.Error("expected validation failure for empty mapping")
	}
}

func TestParameterAndOutput(t *testing.T) {
	s := newScope(t)
	p, err := NewParameter(s, "Env", ParameterProps{Default: "dev", AllowedValues: []any{"dev", "prod"}})
	if err != nil {
		t.Fatalf("NewParameter: %v", err)
	}
	o, err := NewOutput(s, "BucketName", OutputProps{Value: "example", ExportName: "bucket"})
	if err != nil {
		t.Fatalf("NewOutput: %v", err)
	}

	tmpl := NewTemplate()
	if err := p.AddToTemplate(tmpl); err != nil {
		t.Fatalf("param add: %v", err)
	}
	if err := o.AddToTemplate(tmpl); err != nil {
		t.Fatalf("output add: %v", err)
	}
	if tmpl.Parameters["Env"].(map[string]any)["Type"] != "String" {
		t.Error("parameter type should default to String")
	}
	if tmpl.Outputs["BucketName"].(map[string]any)["Export"].(map[string]any)["Name"] != "bucket" {
		t.Error("missing export name")
	}
}

func TestEncodeJSONDeterministic(t *testing.T) {
	tmpl := NewTemplate()
	tmpl.addResource("B", map[string]any{"Type": "AWS::SNS::Topic"})
	tmpl.addResource("A", map[string]any{"Type": "AWS::SNS::Topic"})
	first, err := tmpl.EncodeJSON()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, _ := tmpl.EncodeJSON()
	if string(first) != string(second) {
		t.Error("encoding is not deterministic")
	}
	if !json.Valid(first) {
		t.Error("encoded template is not valid JSON")
	}
	if strings.Index(string(first), `"A"`) > strings.Index(string(first), `"B"`) {
		t.Error("resource keys should be sorted")
	}
}

func TestEncodeYAML(t *testing.T) {
	tmpl := NewTemplate()
	tmpl.Description = "yaml output"
	tmpl.addResource("Topic", map[string]any{"Type": "AWS::SNS::Topic"})
	data, err := tmpl.EncodeYAML()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "AWSTemplateFormatVersion:") || !strings.Contains(out, "Topic:") {
		t.Errorf("unexpected YAML:\n%s", out)
	}
}

func TestCheckLimits(t *testing.T) {
	tmpl := NewTemplate()
	for i := 0; i < MaxMappings+1; i++ {
		tmpl.addMapping(fmt.Sprintf("Map%d", i), map[string]any{})
	}
	if err := tmpl.CheckLimits(); err == nil {
		t.Error("expected mapping quota violation")
	}
}

func TestValidateTemplateBytes(t *testing.T) {
	good := []byte(`{"AWSTemplateFormatVersion":"2010-09-09","Resources":{"X":{"Type":"AWS::SNS::Topic"}}}`)
	if err := ValidateTemplateBytes(good); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}
	if err := ValidateTemplateBytes([]byte("{")); err == nil {
		t.Error("expected JSON parse failure")
	}
	if err := ValidateTemplateBytes([]byte(`{"AWSTemplateFormatVersion":"2010-09-09"}`)); err == nil {
		t.Error("expected empty template rejection")
	}
}
