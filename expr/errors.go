package expr

import "errors"

// Sentinel errors surfaced to callers building or reading an expression
// graph, per spec.md §7. Declaration-after-recording and shape-mismatch are
// both programmer errors, but unlike the teacher's autodiff.Backward
// (which panics on comparable conditions), this package returns them so a
// host embedding the engine can report a bad model definition instead of
// crashing the process that built it.
var (
	ErrDeclarationAfterRecording = errors.New("expr: cannot declare a new variable after recording has started")
	ErrShapeMismatch             = errors.New("expr: incompatible operand shapes")
	ErrOutOfRange                = errors.New("expr: element index out of range")
)
