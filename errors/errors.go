package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead    Phase = "read"    // file access
	PhaseHeader  Phase = "header"  // file header
	PhaseProgram Phase = "program" // program header table
	PhaseSection Phase = "section" // section header table
	PhaseNames   Phase = "names"   // section name resolution
	PhaseDump    Phase = "dump"    // section data extraction
)

// Kind categorizes the error
type Kind string

const (
	KindMalformedMagic            Kind = "malformed_magic"
	KindUnsupportedClass          Kind = "unsupported_class"
	KindUnsupportedEncoding       Kind = "unsupported_encoding"
	KindUnsupportedABI            Kind = "unsupported_abi"
	KindUnsupportedType           Kind = "unsupported_type"
	KindUnsupportedInstructionSet Kind = "unsupported_instruction_set"
	KindOutOfBounds               Kind = "out_of_bounds"
	KindUnknownEnum               Kind = "unknown_enum"
	KindEmptyFile                 Kind = "empty_file"
	KindInvalidData               Kind = "invalid_data"
	KindNotFound                  Kind = "not_found"
)

// Error is the structured error type used throughout the decoder
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
	Offset int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Kind == KindOutOfBounds || e.Offset > 0 {
		fmt.Fprintf(&b, " (offset 0x%x)", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && t.Phase != e.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the file offset the error refers to
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// KindOf returns a phase-agnostic error that matches any Error of the given kind
// under errors.Is.
func KindOf(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Convenience constructors for common error patterns

// OutOfBounds creates an out of bounds error for a read of width bytes at off
func OutOfBounds(phase Phase, path []string, off int64, width, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Offset: off,
		Detail: fmt.Sprintf("read of %d bytes exceeds image length %d", width, length),
		Value:  off,
	}
}

// Unsupported creates an error for a recognized field carrying a value this
// decoder cannot handle
func Unsupported(phase Phase, kind Kind, field string, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Path:   []string{field},
		Detail: fmt.Sprintf("unsupported value %#x", value),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// EmptyFile creates the error returned for a zero-length input file
func EmptyFile(path string) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindEmptyFile,
		Detail: fmt.Sprintf("%s is empty", path),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// EntryError records why a single table entry was dropped
type EntryError struct {
	Err   error
	Index int
}

// TableError is returned alongside the successfully decoded entries of a
// table when one or more entries could not be decoded
type TableError struct {
	Phase   Phase
	Entries []EntryError
}

// Add records a failed entry
func (e *TableError) Add(index int, err error) {
	e.Entries = append(e.Entries, EntryError{Index: index, Err: err})
}

// OrNil returns e if any entries failed, nil otherwise
func (e *TableError) OrNil() error {
	if e == nil || len(e.Entries) == 0 {
		return nil
	}
	return e
}

// Indices returns the indices of the dropped entries in table order
func (e *TableError) Indices() []int {
	out := make([]int, 0, len(e.Entries))
	for _, ent := range e.Entries {
		out = append(out, ent.Index)
	}
	return out
}

func (e *TableError) Error() string {
	if len(e.Entries) == 0 {
		return fmt.Sprintf("[%s] no failed entries", e.Phase)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %d entr", e.Phase, len(e.Entries))
	if len(e.Entries) == 1 {
		b.WriteString("y")
	} else {
		b.WriteString("ies")
	}
	b.WriteString(" dropped:")

	for _, ent := range e.Entries {
		fmt.Fprintf(&b, "\n  - #%d: %v", ent.Index, ent.Err)
	}

	return b.String()
}

// Unwrap exposes the per-entry errors to errors.Is and errors.As
func (e *TableError) Unwrap() []error {
	out := make([]error, 0, len(e.Entries))
	for _, ent := range e.Entries {
		out = append(out, ent.Err)
	}
	return out
}
