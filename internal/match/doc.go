// Package match ranks known names against a misspelled one, for the
// "did you mean" hints attached to diagnostics about unknown tag options
// and configuration values.
package match
