// Package errors provides the classified error primitives used across postbuilder.
//
// Every failure that leaves a package boundary is a *ClassifiedError carrying a
// category (filesystem, validation, build, ...), a severity and structured
// context such as the offending path or post id. The underlying cause stays in
// the chain, so callers can still test it with errors.Is:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "failed to read post").
//		WithContext("path", path).
//		Build()
//
//	errors.Is(err, fs.ErrNotExist) // true when readErr was a missing file
//
// The CLI adapter turns a classified error into a user-facing message and an
// exit code.
package errors
