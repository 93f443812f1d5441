package xmlcodec

import (
	"fmt"

	ews "github.com/ewsproto/ews-go"
)

// SchemaError reports a schema declaration the compiler refused. Schema
// errors are raised when a shape is registered, never during
// serialization, and registration of the offending shape halts entirely.
type SchemaError struct {
	// ID names the shape or member the error applies to.
	ID ews.ShapeID

	// Reason describes the rejected declaration.
	Reason string
}

// Error returns the error message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("xmlcodec: invalid schema %s: %s", e.ID, e.Reason)
}

func schemaErrorf(s *ews.Schema, format string, args ...interface{}) *SchemaError {
	return &SchemaError{ID: s.ID(), Reason: fmt.Sprintf(format, args...)}
}
