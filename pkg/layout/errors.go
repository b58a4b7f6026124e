package layout

import (
	"fmt"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// PlacementError describes a person for which no valid slot was found.
// It is wrapped in an error with code PLACEMENT_FAILED.
type PlacementError struct {
	PersonID string
	Reason   string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("cannot place %q: %s", e.PersonID, e.Reason)
}

// LoopError describes a traversal or realignment that exceeded its safety
// bound. It is wrapped in an error with code INFINITE_LOOP.
type LoopError struct {
	Description string
}

func (e *LoopError) Error() string {
	return "loop detected: " + e.Description
}

func placementFailed(id, format string, args ...any) error {
	cause := &PlacementError{PersonID: id, Reason: fmt.Sprintf(format, args...)}
	return kerrors.Wrap(kerrors.ErrCodePlacementFailed, cause, "placement failed for %q", id)
}

func infiniteLoop(format string, args ...any) error {
	cause := &LoopError{Description: fmt.Sprintf(format, args...)}
	return kerrors.Wrap(kerrors.ErrCodeInfiniteLoop, cause, "layout did not terminate")
}
