// Package results defines the operation result envelope returned by every
// service method. A business failure (unknown id, validation, permission) is
// carried in Failure with a nil error; infrastructure problems are returned
// as wrapped Go errors.
package results

// OperationResult carries either a success or a failure payload.
type OperationResult struct {
	Success any
	Failure any
}
