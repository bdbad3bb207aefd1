// Package schemaspec builds validator trees from declarative YAML or JSON
// schema documents.
//
// Every node names its type and the constraints that apply to it:
//
//	type: object
//	properties:
//	  name: {type: string, min: 2, trim: true}
//	  email: {type: string, format: email}
//	  age: {type: number, int: true, min: 0, optional: true}
//	  tags:
//	    type: list
//	    items: {type: string}
//	    unique: true
//	    default: []
//	additional: false
//
// Parse decodes a document into a Node tree, Build turns the tree into a
// validator.Validator and Compile does both. Unknown types are reported as
// ErrUnknownType; fields that do not apply to a type, wrongly typed values
// and inconsistent constraints are reported as ErrInvalidNode together with
// the location of the offending node.
package schemaspec
