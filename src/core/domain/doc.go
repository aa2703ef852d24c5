// Package domain contains the question/answer entities, the pagination
// value object and the closed set of domain error kinds.
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Errors are created through the New*Error constructors so that callers
//     can classify them with errors.Is and the Is* helpers
package domain
