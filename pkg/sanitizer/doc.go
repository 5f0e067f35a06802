// Package sanitizer normalizes free-text contact input before it reaches the
// booking wizard.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. They never fail; input that cannot be normalized is
// returned trimmed.
//
// Normalization includes:
//   - Strings: collapse whitespace runs, trim leading/trailing spaces
//   - Phone numbers: E.164 (+[country][number]) when the number is valid for
//     the studio region or carries its own country code
//   - Emails: whitespace removed, domain lowercased
package sanitizer
