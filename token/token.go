// Package token implements deferred values: opaque string markers that stand
// in for template fragments resolved only at deployment time. A marker can be
// embedded anywhere a string is accepted; plain substring operations leave it
// intact, and the resolver turns it back into its bound fragment during
// synthesis.
package token

import (
	"fmt"
	"strings"
	"sync"
)

const (
	beginMarker = "${Token["
	endMarker   = "]}"
)

// registry maps token IDs to the template fragments they stand for.
// Process-wide because pseudo tokens are shared constants across every app
// in the process.
var (
	mu       sync.Mutex
	counter  int
	bindings = map[string]any{}
)

// ForValue allocates a fresh token marker bound to an arbitrary template
// fragment. The returned string can be concatenated into literals; Resolve
// substitutes the fragment back in.
func ForValue(fragment any) string {
	mu.Lock()
	defer mu.Unlock()
	counter++
	id := fmt.Sprintf("TOKEN.%d", counter)
	bindings[id] = fragment
	return beginMarker + id + endMarker
}

// bindWellKnown registers a marker with a stable ID, used for the
// CloudFormation pseudo parameters below.
func bindWellKnown(id string, fragment any) string {
	mu.Lock()
	defer mu.Unlock()
	bindings[id] = fragment
	return beginMarker + id + endMarker
}

func ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

// Well-known deferred values, one per CloudFormation pseudo parameter. Each
// is a constant marker for the current process; comparing two occurrences
// with == is meaningful.
var (
	Region    = bindWellKnown("AWS.Region", ref("AWS::Region"))
	URLSuffix = bindWellKnown("AWS.URLSuffix", ref("AWS::URLSuffix"))
	Partition = bindWellKnown("AWS.Partition", ref("AWS::Partition"))
	AccountID = bindWellKnown("AWS.AccountId", ref("AWS::AccountId"))
	StackName = bindWellKnown("AWS.StackName", ref("AWS::StackName"))
	StackID   = bindWellKnown("AWS.StackId", ref("AWS::StackId"))
	NoValue   = bindWellKnown("AWS.NoValue", ref("AWS::NoValue"))
)

// IsUnresolved reports whether s contains at least one token marker.
func IsUnresolved(s string) bool {
	i := strings.Index(s, beginMarker)
	if i < 0 {
		return false
	}
	return strings.Contains(s[i+len(beginMarker):], endMarker)
}

func lookupBinding(id string) (any, bool) {
	mu.Lock()
	defer mu.Unlock()
	v, ok := bindings[id]
	return v, ok
}

// split cuts s into alternating literal and marker segments, preserving
// order. Marker segments carry the token ID.
type segment struct {
	literal string
	tokenID string
}

func split(s string) []segment {
	var segs []segment
	for {
		i := strings.Index(s, beginMarker)
		if i < 0 {
			break
		}
		j := strings.Index(s[i+len(beginMarker):], endMarker)
		if j < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, segment{literal: s[:i]})
		}
		id := s[i+len(beginMarker) : i+len(beginMarker)+j]
		segs = append(segs, segment{tokenID: id})
		s = s[i+len(beginMarker)+j+len(endMarker):]
	}
	if s != "" {
		segs = append(segs, segment{literal: s})
	}
	return segs
}
