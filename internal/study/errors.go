package study

import "errors"

// Sentinel errors for the core's failure taxonomy. Operations never panic
// across the package boundary; callers classify failures with errors.Is.
var (
	// ErrInvalidInput marks malformed or out-of-range arguments rejected
	// before any state mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups that matched nothing. A missing discipline
	// reference is a valid outcome, not a crash.
	ErrNotFound = errors.New("not found")

	// ErrDisciplineInUse marks an attempt to remove a discipline that is
	// still referenced by at least one study record.
	ErrDisciplineInUse = errors.New("discipline is referenced by study records")

	// ErrDuplicateName marks a discipline whose name collides
	// case-insensitively with an existing one.
	ErrDuplicateName = errors.New("discipline name already exists")

	// ErrBuiltinDiscipline marks an attempt to remove a seeded discipline.
	ErrBuiltinDiscipline = errors.New("built-in disciplines cannot be removed")

	// ErrInvalidSnapshot marks a malformed backup snapshot. Imports reject
	// the whole snapshot atomically; prior state is untouched.
	ErrInvalidSnapshot = errors.New("invalid snapshot format")
)
