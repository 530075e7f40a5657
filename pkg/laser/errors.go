package laser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvableLayer is returned when a logical layer name has no
	// match in the board's layer table.
	ErrUnresolvableLayer = errors.New("unresolvable layer")

	// ErrInvalidBoardFile is returned when a board file cannot be read or
	// parsed.
	ErrInvalidBoardFile = errors.New("invalid board file")

	// ErrOutputWrite is returned when an output directory or file cannot
	// be created or written.
	ErrOutputWrite = errors.New("output write failed")
)

// LayerError reports a layer that could not be resolved on a board.
type LayerError struct {
	Board string // board file path, may be empty
	Layer string // logical layer name as requested
}

func (e *LayerError) Error() string {
	if e.Board == "" {
		return fmt.Sprintf("layer %q: %v", e.Layer, ErrUnresolvableLayer)
	}
	return fmt.Sprintf("%s: layer %q: %v", e.Board, e.Layer, ErrUnresolvableLayer)
}

// Unwrap makes errors.Is(err, ErrUnresolvableLayer) hold.
func (e *LayerError) Unwrap() error {
	return ErrUnresolvableLayer
}
