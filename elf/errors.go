package elf

import (
	stderrors "errors"

	"github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// Decoding errors. Each matches, under errors.Is, every structured error of
// its kind regardless of the phase that produced it.
var (
	ErrMalformedMagic            = errors.KindOf(errors.KindMalformedMagic)
	ErrUnsupportedClass          = errors.KindOf(errors.KindUnsupportedClass)
	ErrUnsupportedEncoding       = errors.KindOf(errors.KindUnsupportedEncoding)
	ErrUnsupportedABI            = errors.KindOf(errors.KindUnsupportedABI)
	ErrUnsupportedType           = errors.KindOf(errors.KindUnsupportedType)
	ErrUnsupportedInstructionSet = errors.KindOf(errors.KindUnsupportedInstructionSet)
	ErrOutOfBounds               = errors.KindOf(errors.KindOutOfBounds)
	ErrEmptyFile                 = errors.KindOf(errors.KindEmptyFile)
	ErrNotFound                  = errors.KindOf(errors.KindNotFound)
)

// readError converts a cursor failure into a structured error for phase.
func readError(phase errors.Phase, path []string, err error) error {
	var pe *binary.ParseError
	if stderrors.As(err, &pe) && stderrors.Is(pe.Err, binary.ErrOutOfBounds) {
		if pe.Field != "" {
			path = append(path[:len(path):len(path)], pe.Field)
		}
		return errors.OutOfBounds(phase, path, int64(pe.Position), pe.Width, pe.Length)
	}
	return errors.Wrap(phase, errors.KindInvalidData, err, "read")
}
