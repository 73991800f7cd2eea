package lookup

import "testing"

func TestTokenizeSuffixBeforeRegion(t *testing.T) {
	// "example" must be rewritten before "a"; otherwise the region code
	// could match inside the suffix.
	subs := []Substitution{
		{Name: "domainSuffix", Value: "example.com", Token: "<SUFFIX>"},
		{Name: "region", Value: "e", Token: "<REGION>"},
	}
	got := Tokenize("svc.e.example.com", subs)
	if got != "svc.<REGION>.<SUFFIX>" {
		t.Errorf("got %q", got)
	}
}

func TestTokenizeWrongOrderCorrupts(t *testing.T) {
	// Demonstrates why the order is fixed: region-first rewrites inside
	// the suffix.
	subs := []Substitution{
		{Name: "region", Value: "e", Token: "<REGION>"},
		{Name: "domainSuffix", Value: "example.com", Token: "<SUFFIX>"},
	}
	got := Tokenize("svc.e.example.com", subs)
	if got == "svc.<REGION>.<SUFFIX>" {
		t.Errorf("expected corrupted form, got clean collapse: %q", got)
	}
}

func TestTokenizeSkipsEmptyConcreteValue(t *testing.T) {
	subs := []Substitution{
		{Name: "domainSuffix", Value: "", Token: "<SUFFIX>"},
		{Name: "region", Value: "us-east-1", Token: "<REGION>"},
	}
	got := Tokenize("svc.us-east-1.internal", subs)
	if got != "svc.<REGION>.internal" {
		t.Errorf("got %q", got)
	}
}

func TestTokenizeGlobalReplacement(t *testing.T) {
	subs := []Substitution{{Name: "region", Value: "x", Token: "<R>"}}
	if got := Tokenize("x.x.x", subs); got != "<R>.<R>.<R>" {
		t.Errorf("got %q", got)
	}
}

func TestTokenizeNoSubstitutionsIsIdentity(t *testing.T) {
	if got := Tokenize("unchanged", nil); got != "unchanged" {
		t.Errorf("got %q", got)
	}
}

func TestTryCollapseUniform(t *testing.T) {
	values := map[string]string{
		"us-east-1":  "svc.us-east-1.amazonaws.com",
		"cn-north-1": "svc.cn-north-1.amazonaws.com.cn",
	}
	suffixes := map[string]string{
		"us-east-1":  "amazonaws.com",
		"cn-north-1": "amazonaws.com.cn",
	}
	subs := func(key string) []Substitution {
		return []Substitution{
			{Name: "domainSuffix", Value: suffixes[key], Token: "<SUFFIX>"},
			{Name: "region", Value: key, Token: "<REGION>"},
		}
	}
	expr, ok := TryCollapse(values, subs)
	if !ok {
		t.Fatal("expected collapse")
	}
	if expr != "svc.<REGION>.<SUFFIX>" {
		t.Errorf("collapsed form = %q", expr)
	}
}

func TestTryCollapseNonUniformFails(t *testing.T) {
	values := map[string]string{"a": "urlA", "b": "urlB"}
	if _, ok := TryCollapse(values, nil); ok {
		t.Error("expected collapse failure")
	}
}

func TestTryCollapseSingleEntry(t *testing.T) {
	expr, ok := TryCollapse(map[string]string{"a": "anything"}, nil)
	if !ok || expr != "anything" {
		t.Errorf("got %q ok=%v", expr, ok)
	}
}
