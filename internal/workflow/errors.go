package workflow

import "errors"

// Error kinds for workflow runs. Callers distinguish them with errors.Is to
// map onto the right response: validation failures are client errors,
// external call failures mean the model was unreachable, and structuring
// failures mean the model answered but produced unusable output.
var (
	ErrValidation   = errors.New("validation failed")
	ErrExternalCall = errors.New("external call failed")
	ErrStructuring  = errors.New("structuring failed")
)
