package grid

import "errors"

// Grid mutation errors.
var (
	// ErrCapacityExceeded is returned when a row is added to a full grid.
	ErrCapacityExceeded = errors.New("grid is at maximum row count")

	// ErrMinimumRows is returned when removing a row would drop below the initial rows.
	ErrMinimumRows = errors.New("grid is at minimum row count")

	// ErrSnapshotSizeMismatch is returned when a snapshot does not fit the grid's slots.
	// During undo/redo it means history and grid have diverged.
	ErrSnapshotSizeMismatch = errors.New("snapshot size does not match grid slots")

	// ErrInvalidGesture is returned for positions outside the grid or drops without a pick-up.
	ErrInvalidGesture = errors.New("invalid gesture")
)
