package schema

import "errors"

// Error kinds for the conversion pipeline. Stages wrap these with
// context via fmt.Errorf and %w; callers classify with errors.Is.
var (
	// ErrRange flags bad time or rate bounds (crop window, resample rate).
	ErrRange = errors.New("range error")

	// ErrSchemaMismatch flags a clip whose DOF count does not match the skeleton.
	ErrSchemaMismatch = errors.New("skeleton schema mismatch")

	// ErrSimulationDiverged flags non-finite or out-of-bounds engine state.
	ErrSimulationDiverged = errors.New("simulation diverged")

	// ErrEngineUnavailable flags a physics engine that could not be initialized.
	ErrEngineUnavailable = errors.New("physics engine unavailable")

	// ErrIncompleteClip flags serialization of a clip missing required fields.
	ErrIncompleteClip = errors.New("incomplete clip")

	// ErrPublish wraps registry upload failures.
	ErrPublish = errors.New("publish failed")
)
