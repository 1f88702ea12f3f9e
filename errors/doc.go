// Package errors provides structured error handling for the slotkit
// registry. Errors carry machine-readable codes so callers can branch on
// the failure class (missing scope, conflicting resolution mode, ...)
// without matching message strings.
package errors
