package tape

import "errors"

// ErrDeclarationAfterRecording is returned when a new free input is
// declared after the tape has already recorded an operator.
var ErrDeclarationAfterRecording = errors.New("tape: cannot declare a new input after recording has started")

// ErrOutOfRange reports a trace slot outside a handle's declared range. No
// function of this package returns it; package expr reports out-of-range
// element access with its own ErrOutOfRange.
var ErrOutOfRange = errors.New("tape: element index out of range")
