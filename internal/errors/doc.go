// Package errors provides structured error handling for the world model
// and its consumers.
//
// Errors carry a Code so callers can branch on failure class without
// string matching:
//
//	cell, err := repo.GetCell(ctx, input)
//	if errors.IsNotFound(err) {
//	    // coordinate has never been observed; treat as unknown terrain
//	}
//
// Repository and component constructors validate their configuration with
// ValidationBuilder and return InvalidArgument errors listing every missing
// dependency at once.
//
// The planner and explorer treat NotFound and ResourceExhausted as normal
// control-flow outcomes (unknown cell, search budget spent); only Internal,
// Unavailable and DataLoss indicate real faults. A DataLoss error from the
// store is fatal to the session: losing spatial memory corrupts every
// downstream decision, so it is propagated rather than retried.
package errors
