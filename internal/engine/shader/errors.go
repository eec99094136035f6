package shader

import (
	"errors"
	"fmt"
)

// ErrShadersUnsupported is returned when generation is requested but
// the video driver has no programmable shading at all.
var ErrShadersUnsupported = errors.New("shaders are not supported by the video driver")

// ErrWrongGoroutine is returned by owner-only operations invoked from a
// goroutine other than the one that created the Source.
var ErrWrongGoroutine = errors.New("operation restricted to the owner goroutine")

// CompileError reports that the driver rejected an assembled program.
// The full stage texts are dumped to the log as a side effect; Label
// identifies the program there.
type CompileError struct {
	Label string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile the %q shader (check the log for details)", e.Label)
}

func (e *CompileError) Unwrap() error { return e.Err }
