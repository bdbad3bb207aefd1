// Package openapi turns validator trees into OpenAPI 3 schemas.
//
// The generator walks a tree with validator.Visit and only reads the Info of
// each node, so the same validator can be validated against and documented at
// the same time. Constructs OpenAPI 3.0 cannot express directly are emitted as
// extensions: tuple positions as x-prefixItems and pattern rules as
// x-patternProperties.
//
// # Usage
//
//	gen := openapi.NewGenerator()
//	gen.Register("User", userValidator)
//	components := gen.Components()
//	body, _ := json.MarshalIndent(components, "", "  ")
//
// A Generator accumulates named schemas and is not safe for concurrent use.
package openapi
