package ir

import "github.com/gogpu/imgcc"

// errKind mirrors imgcc.CommandErrorKind's taxonomy for builder call sites
// in this package — kept as a small local alias table so callers read
// `ir.badDescriptorKind` style names without importing imgcc's constants
// directly at every call site.
type errKind = imgcc.CommandErrorKind

const (
	genericTypeErrorKind          = imgcc.KindGenericTypeError
	conflictingTypesKind          = imgcc.KindConflictingTypes
	badDescriptorKind             = imgcc.KindBadDescriptor
	concreteDescriptorRequiredKind = imgcc.KindConcreteDescriptorRequired
	unimplementedKind             = imgcc.KindUnimplemented
	invalidCallKind               = imgcc.KindOther
)

// NewCommandError builds a *imgcc.CommandError of the given kind, for
// validation failures that don't fit NewBadDescriptorError/
// NewConflictingTypesError's specific shapes.
func NewCommandError(kind errKind, reason string) error {
	switch kind {
	case badDescriptorKind:
		return imgcc.NewBadDescriptorError(imgcc.GenericDescriptor{}, reason)
	case conflictingTypesKind:
		return imgcc.NewConflictingTypesError(imgcc.GenericDescriptor{}, imgcc.GenericDescriptor{})
	case concreteDescriptorRequiredKind:
		return imgcc.ErrConcreteDescriptorRequired()
	case unimplementedKind:
		return imgcc.ErrCommandUnimplemented()
	case genericTypeErrorKind:
		return imgcc.ErrGenericTypeError()
	default:
		return imgcc.ErrCommandOther(reason)
	}
}
