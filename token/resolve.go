package token

import "fmt"

// UnresolvedTokenError reports a marker whose ID has no binding in the
// process registry. Markers only come from ForValue or the well-known
// constants, so hitting this usually means a literal collided with the
// marker syntax.
type UnresolvedTokenError struct {
	ID string
}

func (e *UnresolvedTokenError) Error() string {
	return fmt.Sprintf("unresolved token '%s': no fragment bound for this marker", e.ID)
}

// Resolve replaces every token marker inside v with its bound template
// fragment, recursively. Strings that mix literals and markers become an
// Fn::Join over the parts; a string that is exactly one marker becomes the
// fragment itself. Maps and slices are resolved element-wise.
func Resolve(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return resolveString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			r, err := Resolve(elem)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			r, err := Resolve(elem)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case []string:
		out := make([]any, len(val))
		for i, elem := range val {
			r, err := resolveString(elem)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

func resolveString(s string) (any, error) {
	segs := split(s)
	if len(segs) == 0 {
		return s, nil
	}
	if len(segs) == 1 && segs[0].tokenID == "" {
		return s, nil
	}
	if len(segs) == 1 {
		return resolveMarker(segs[0].tokenID)
	}
	parts := make([]any, 0, len(segs))
	for _, seg := range segs {
		if seg.tokenID == "" {
			parts = append(parts, seg.literal)
			continue
		}
		frag, err := resolveMarker(seg.tokenID)
		if err != nil {
			return nil, err
		}
		parts = append(parts, frag)
	}
	return map[string]any{"Fn::Join": []any{"", parts}}, nil
}

func resolveMarker(id string) (any, error) {
	frag, ok := lookupBinding(id)
	if !ok {
		return nil, &UnresolvedTokenError{ID: id}
	}
	// Fragments may themselves embed markers (FindInMap over a pseudo
	// parameter index, for example).
	return Resolve(frag)
}
