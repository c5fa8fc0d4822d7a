// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "failed to parse departure time",
//	    parseErr,
//	    map[string]interface{}{
//	        "column": "Fecha-O",
//	        "value":  raw,
//	    },
//	)
//
// Callers branch on the code rather than on message text:
//
//	if errors.IsCode(err, errors.ErrCodeDegenerateData) {
//	    // abort training
//	}
package errors
