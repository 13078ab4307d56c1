package imgcc

import (
	"errors"
	"fmt"
	"runtime"
)

// CommandErrorKind taxonomizes build-time failures raised by a
// CommandBuffer builder call.
type CommandErrorKind uint8

const (
	// KindGenericTypeError is a generic arity or bound mismatch.
	KindGenericTypeError CommandErrorKind = iota
	// KindConflictingTypes is a chroma/size incompatibility between two registers.
	KindConflictingTypes
	// KindBadDescriptor is an inconsistent layout, forbidden color pair, or
	// inconsistent invariant.
	KindBadDescriptor
	// KindConcreteDescriptorRequired is raised when an operation needs a
	// concrete descriptor but found a generic one.
	KindConcreteDescriptorRequired
	// KindUnimplemented marks a recognized shape with no implementation yet.
	KindUnimplemented
	// KindOther is a miscellaneous failure: bad register, invalid call
	// arity, palette channel not representable.
	KindOther
)

// Package sentinel errors. CommandError has no Unwrap method, so errors.Is
// does not match a CommandError against these values.
var (
	ErrBadRegister  = errors.New("imgcc: bad register reference")
	ErrInvalidCall  = errors.New("imgcc: invalid call arity or argument")
	ErrUnimplemented = errors.New("imgcc: recognized op shape, not yet implemented")
)

// CommandError is returned by every CommandBuffer builder call that fails
// validation. It carries the taxonomized Kind, a human-readable reason, and
// the source location of the builder call that produced it.
type CommandError struct {
	kind   CommandErrorKind
	reason string
	below  GenericDescriptor
	above  GenericDescriptor
	file   string
	line   int
}

func newCommandError(kind CommandErrorKind, reason string) *CommandError {
	_, file, line, _ := runtime.Caller(2)
	return &CommandError{kind: kind, reason: reason, file: file, line: line}
}

// NewBadDescriptorError reports an inconsistent descriptor or forbidden
// color pairing, with desc attached for diagnostics.
func NewBadDescriptorError(desc GenericDescriptor, reason string) *CommandError {
	e := newCommandError(KindBadDescriptor, reason)
	e.below = desc
	return e
}

// NewConflictingTypesError reports a chroma/size incompatibility between
// two registers' descriptors.
func NewConflictingTypesError(wanted, got GenericDescriptor) *CommandError {
	e := newCommandError(KindConflictingTypes, "conflicting types")
	e.below, e.above = wanted, got
	return e
}

// ErrGenericTypeError, ErrConcreteDescriptorRequired, ErrCommandUnimplemented,
// and ErrCommandOther are the zero-context variants of the remaining kinds.
func ErrGenericTypeError() *CommandError {
	return newCommandError(KindGenericTypeError, "generic type error")
}

func ErrConcreteDescriptorRequired() *CommandError {
	return newCommandError(KindConcreteDescriptorRequired, "concrete descriptor required")
}

func ErrCommandUnimplemented() *CommandError {
	return newCommandError(KindUnimplemented, "unimplemented")
}

func ErrCommandOther(reason string) *CommandError {
	return newCommandError(KindOther, reason)
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.file, e.line, e.reason)
}

// Kind returns the error's taxonomy classification.
func (e *CommandError) Kind() CommandErrorKind { return e.kind }

// IsTypeErr reports whether this error reflects a type incompatibility,
// matching the original's is_type_err: GenericTypeError, ConflictingTypes,
// or BadDescriptor.
func (e *CommandError) IsTypeErr() bool {
	switch e.kind {
	case KindGenericTypeError, KindConflictingTypes, KindBadDescriptor:
		return true
	default:
		return false
	}
}

// CompileError is returned by the linker. At present the taxonomy has a
// single member: every link-time failure (arity mismatch, unrecognized
// method, missing link entry, or an op that reached lowering with no
// implementation) subsumes to NotYetImplemented.
type CompileError struct {
	reason string
}

// ErrNotYetImplemented is the sentinel wrapped by every CompileError, so
// callers can test with errors.Is(err, imgcc.ErrNotYetImplemented).
var ErrNotYetImplemented = errors.New("imgcc: not yet implemented")

// NewCompileError builds a CompileError with the given diagnostic reason.
func NewCompileError(reason string) *CompileError {
	return &CompileError{reason: reason}
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile: %s: %s", ErrNotYetImplemented, e.reason)
}

// Unwrap makes errors.Is(err, ErrNotYetImplemented) work for every CompileError.
func (e *CompileError) Unwrap() error { return ErrNotYetImplemented }
