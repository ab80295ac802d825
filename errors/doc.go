// Package errors provides structured error types for the elfkit decoder.
//
// Errors are categorized by Phase (which part of the image was being decoded)
// and Kind (error category). The Error type carries the field path, the file
// offset involved, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseHeader, errors.KindUnsupportedClass).
//		Path("ident", "class").
//		Offset(4).
//		Value(3).
//		Detail("class byte must be 1 or 2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseProgram, path, 0x40, 8, 0x44)
//	err := errors.EmptyFile("/bin/true")
//
// Table decoders never abort on a single bad entry. They return the entries
// that decoded together with a *TableError listing the dropped ones:
//
//	progs, err := elf.ParsePrograms(data, hdr)
//	var te *errors.TableError
//	if stderrors.As(err, &te) {
//	    // progs holds every entry not listed in te.Entries
//	}
//
// All errors implement the standard error interface and support errors.Is/As.
// KindOf builds a phase-agnostic target for errors.Is.
package errors
