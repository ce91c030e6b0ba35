// Package errors provides structured error types for better observability
// and programmatic error handling across the collector.
//
// Collectors never let these errors abort a domain. They are rendered into
// the domain summary as "*_error" marker fields, and the code tells the
// reader whether a collaborator was missing (UNAVAILABLE), output could not
// be parsed (PARSE) or an artifact write failed (IO).
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "command did not finish",
//	    ctx.Err(),
//	    map[string]any{
//	        "command": "systeminfo",
//	        "timeout": "30s",
//	    },
//	)
package errors
