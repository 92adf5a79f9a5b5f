package cli

import (
	"fmt"
	"os"

	"github.com/lokitools/schema/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	// Check for specific error codes
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No hook configuration found. Create a .pre-commit-config.yaml at the repository root.\n")
		return err

	case errors.ErrCodeSchemaKeyNotFound:
		if lokiErr, ok := err.(*errors.LokiError); ok {
			fmt.Fprintf(os.Stderr, "❌ Schema key '%s' not found in %s\n",
				lokiErr.Details["key"], lokiErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Set 'resolver.schema_key' in loki.yml to the section holding your schemas.\n")
		}
		return err

	case errors.ErrCodeLockHeld:
		if lokiErr, ok := err.(*errors.LokiError); ok {
			fmt.Fprintf(os.Stderr, "❌ Target '%s' is locked by another resolve run\n", lokiErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Wait for the other run to finish, or remove a stale .loki-resolve.lock file.\n")
		}
		return err

	case errors.ErrCodeResolveCycle:
		fmt.Fprintf(os.Stderr, "❌ Resolution cannot make progress: files defer to each other\n")
		if lokiErr, ok := err.(*errors.LokiError); ok {
			fmt.Fprintf(os.Stderr, "Check these files for circular references: %v\n", lokiErr.Details["files"])
		}
		return err

	case errors.ErrCodeTargetInvalid:
		if lokiErr, ok := err.(*errors.LokiError); ok {
			fmt.Fprintf(os.Stderr, "❌ Target path '%s' is not usable\n", lokiErr.Details["path"])
			fmt.Fprintf(os.Stderr, "Pass a directory containing .json schema files, or set 'resolver.target' in loki.yml.\n")
		}
		return err

	case errors.ErrCodeRefInvalid, errors.ErrCodeRefUnresolved:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "References must start with '#' (internal) or '.' (external file).\n")
		return err

	case errors.ErrCodeSettingsInvalid:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Fix loki.yml and retry.\n")
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if lokiErr, ok := err.(*errors.LokiError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", lokiErr.ToJSON())
			}
		}
		return err
	}
}
