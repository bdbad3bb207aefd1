package schemaspec

import "errors"

var (
	// ErrSyntax is returned when the schema document is not valid YAML or JSON.
	ErrSyntax = errors.New("schemaspec: malformed schema document")

	// ErrUnknownType is returned for a node whose type is not recognized.
	ErrUnknownType = errors.New("schemaspec: unknown node type")

	// ErrInvalidNode is returned for misplaced fields, wrongly typed
	// attributes and inconsistent constraints.
	ErrInvalidNode = errors.New("schemaspec: invalid node")
)
