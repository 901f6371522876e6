package canvas

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// Sentinel errors describing the taxonomy of recoverable failure modes.
// None of these ever escape a gesture handler; callers log and continue.
var (
	// ErrCorruptSnapshot is returned by loadCanvasState-style callers when a
	// persisted snapshot fails to decode. The caller starts from an empty
	// graph rather than failing outright.
	ErrCorruptSnapshot = errors.New("mediacanvas: corrupt snapshot")
	// ErrCorruptViewport is returned when a persisted viewport record fails
	// its safety clamp; its invalid offset and/or scale is reset to the
	// identity value.
	ErrCorruptViewport = errors.New("mediacanvas: corrupt viewport")
	// ErrUnknownNodeType is logged (not returned to a caller that must keep
	// going) when a snapshot node names a type the registry doesn't know.
	ErrUnknownNodeType = errors.New("mediacanvas: unknown node type")
	// ErrMissingResource marks a node whose payload is absent from the
	// resource cache at rehydrate time; the node stays placed and draws as
	// a placeholder until asynchronously resolved.
	ErrMissingResource = errors.New("mediacanvas: missing resource")
	// ErrStaleSelection marks a selection id that no longer resolves to a
	// live node; the id is dropped rather than aborting the gesture.
	ErrStaleSelection = errors.New("mediacanvas: stale selection id")
)

// logWarn logs a best-effort, swallowed failure with the package's
// conventional prefix. Used for transient persistence failures, corrupt
// records, and invariant violations at a gesture boundary — none of which
// may abort the gesture or escape to the caller.
func logWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[mediacanvas] "+format+"\n", args...)
}

// logInfo logs a non-error notice through the standard logger. Skipped
// unknown node types are reported through logWarn, not here.
func logInfo(format string, args ...any) {
	log.Printf("[mediacanvas] "+format, args...)
}

// wrapf wraps err with a mediacanvas-prefixed message, following the
// package's fmt.Errorf("mediacanvas: ...: %w", err) convention.
func wrapf(op string, err error) error {
	return fmt.Errorf("mediacanvas: %s: %w", op, err)
}
