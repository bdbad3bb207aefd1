// Package validator builds composable validators for untrusted, loosely typed
// input such as decoded JSON or YAML documents.
//
// A validator is an immutable value. Every builder method returns a modified
// copy, so a validator can be embedded in several schemas and shared between
// goroutines without locking:
//
//	user := validator.Object(validator.Shape{
//	    "name":  validator.String().Trim().Min(2),
//	    "email": validator.String().Email(),
//	    "age":   validator.Number().Int().Min(0).Optional(),
//	    "tags":  validator.List(validator.String()).Unique().Default([]any{}),
//	})
//
//	out, err := user.Validate(input)
//	if f, ok := validator.AsFailure(err); ok {
//	    fmt.Println(f.Path, f.Code, f.Message)
//	}
//
// # Building blocks
//
// Leaves: String, Number, Boolean, Null, Any, Custom and Transform.
// Collections: List, Dict, Tuple and Union. Object wraps Dict and adds the
// schema algebra operations Extend, Exclude and Omit.
//
// # Nil handling
//
// Whenever a node receives nil it returns its default if one is configured,
// then nil if it is nullable or optional, and otherwise fails with
// CodeRequired. This is evaluated independently at every node of the tree.
//
// # Sync and async
//
// Validate stops at the first failure. ValidateAsync starts one goroutine per
// item, tuple position, map key or union option, waits for all of them, and
// reports the failure of the earliest element in declaration order, so both
// entry points return the same result for the same input. Running subtasks are
// never cancelled by the package; cancelling the context prevents subtasks that
// have not started yet from running.
//
// # Errors
//
// Every failure is a *Failure carrying a Code, a Message, a Path and
// translation metadata. errors.Is(err, ErrValidationFailed) reports whether an
// error is a validation failure. Misconfiguration, such as an invalid pattern
// or a conflicting Extend, panics.
//
// # Introspection
//
// Each validator exposes Kind and an Info method returning a copy of its
// configuration. Visit dispatches on Kind; the openapi package uses it to
// generate schemas.
package validator
