package lookup

import "fmt"

// MissingFactError is returned when a fact has no value in any candidate
// region and no default was supplied.
type MissingFactError struct {
	Fact string
}

func (e *MissingFactError) Error() string {
	return fmt.Sprintf("no value found for fact %q in any candidate region; "+
		"register the fact for your regions with regioninfo.Register, "+
		"or widen the stack's target partitions to cover regions that define it",
		e.Fact)
}

// TypeMismatchError is returned when the construct already registered under
// a table identity is not a mapping. Proceeding would corrupt output, so
// resolution fails fast instead.
type TypeMismatchError struct {
	Identity string
	Found    any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("construct %q already exists in scope but is a %T, not a mapping",
		e.Identity, e.Found)
}
