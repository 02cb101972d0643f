package records

import "fmt"

// SchemaError reports malformed input structure: a root that is neither a
// sequence nor an object, or a sequence element that is not an object. It
// is fatal for the run; partial record sets are never produced.
type SchemaError struct {
	Location string
	Reason   string
}

func (e *SchemaError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("records: %s", e.Reason)
	}
	return fmt.Sprintf("records: %s: %s", e.Location, e.Reason)
}

// NewSchemaError constructs a SchemaError for the given source location.
func NewSchemaError(location, reason string) *SchemaError {
	return &SchemaError{Location: location, Reason: reason}
}
