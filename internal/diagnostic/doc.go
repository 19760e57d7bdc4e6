// Package diagnostic provides structured warnings, errors, and
// informational notes produced while generating a metamodel.
//
// Key capabilities:
//   - Conflicting or duplicated marker warnings
//   - Unknown marker option reports with "did you mean" suggestions
//   - Notes about types excluded by the ignore list
package diagnostic
