package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LokiError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("hook configuration file not found: %s", path)).
		WithDetail("path", path)
}

// RefInvalid creates an error for a reference that cannot be classified
func RefInvalid(ref interface{}) *LokiError {
	return New(ErrCodeRefInvalid, fmt.Sprintf("value '%v' is not a valid reference", ref)).
		WithDetail("ref", fmt.Sprintf("%v", ref))
}

// RefUnresolved creates an error for a reference whose target cannot be fetched
func RefUnresolved(ref string, reason string) *LokiError {
	return New(ErrCodeRefUnresolved, fmt.Sprintf("reference '%s' could not be resolved: %s", ref, reason)).
		WithDetail("ref", ref)
}

// SchemaKeyNotFound creates an error for a schema key missing from a document
func SchemaKeyNotFound(key string, path string) *LokiError {
	return New(ErrCodeSchemaKeyNotFound, fmt.Sprintf("schema key '%s' not found in %s", key, path)).
		WithDetail("key", key).
		WithDetail("path", path)
}

// ResolveCycle creates an error for a resolution pass that cannot make progress
func ResolveCycle(files []string) *LokiError {
	return New(ErrCodeResolveCycle,
		fmt.Sprintf("%d file(s) defer each other and cannot be resolved", len(files))).
		WithDetail("files", files)
}

// TargetInvalid creates an error for an unusable target directory
func TargetInvalid(path string, reason string) *LokiError {
	return New(ErrCodeTargetInvalid, fmt.Sprintf("target path '%s' is not usable: %s", path, reason)).
		WithDetail("path", path)
}

// LockHeld creates an error for a target already locked by another run
func LockHeld(path string) *LokiError {
	return New(ErrCodeLockHeld, fmt.Sprintf("target '%s' is locked by another process", path)).
		WithDetail("path", path)
}
