package construct

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ValidateTree runs every Validator in the subtree rooted at c and returns
// the aggregated failures, or nil when the tree is clean. Each failure is
// prefixed with the offending construct's path.
func ValidateTree(c Construct) error {
	var result *multierror.Error
	c.Node().Walk(func(cur Construct) {
		v, ok := cur.(Validator)
		if !ok {
			return
		}
		if err := v.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", cur.Node().Path(), err))
		}
	})
	return result.ErrorOrNil()
}
