package cfn

import "github.com/hemantobora/stackcraft/token"

// Ref returns a deferred string for {"Ref": <name>}.
func Ref(name string) string {
	return token.ForValue(map[string]any{"Ref": name})
}

// GetAtt returns a deferred string for Fn::GetAtt on a logical ID.
func GetAtt(logicalID, attribute string) string {
	return token.ForValue(map[string]any{"Fn::GetAtt": []any{logicalID, attribute}})
}

// Join returns a deferred string for Fn::Join over parts. Parts may
// themselves contain deferred values.
func Join(delimiter string, parts []any) string {
	return token.ForValue(map[string]any{"Fn::Join": []any{delimiter, parts}})
}

// Sub returns a deferred string for Fn::Sub over a template string.
func Sub(tmpl string) string {
	return token.ForValue(map[string]any{"Fn::Sub": tmpl})
}

// FindInMap returns a deferred string for Fn::FindInMap. topKey may be a
// deferred value (typically the current region).
func FindInMap(mappingLogicalID string, topKey any, secondKey string) string {
	return token.ForValue(map[string]any{
		"Fn::FindInMap": []any{mappingLogicalID, topKey, secondKey},
	})
}
