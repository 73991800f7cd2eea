package lookup

import (
	"strings"
	"unicode"

	"github.com/hemantobora/stackcraft/regioninfo"
)

// TableIdentity derives the construct ID of the shared mapping for a fact's
// class: the capitalized class plus "Map". Facts sharing a class share one
// mapping per scope, differentiated by row key.
func TableIdentity(factName string) string {
	class := regioninfo.FactClass(factName)
	if class == "" {
		return "Map"
	}
	runes := []rune(class)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes) + "Map"
}

// RowKey derives the mapping's second-level key from the fact's parameter:
// every byte outside [A-Za-z0-9] becomes '_'. Derivation is total; there is
// no error path.
func RowKey(factName string) string {
	param := regioninfo.FactParam(factName)
	var b strings.Builder
	b.Grow(len(param))
	for i := 0; i < len(param); i++ {
		c := param[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
