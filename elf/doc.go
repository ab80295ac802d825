// Package elf decodes ELF object files into a read-only model.
//
// Both word classes (ELF32, ELF64) and both byte orders are supported. The
// byte order is never taken from the host: it comes from the image's data
// byte and is applied to every multi-byte field.
//
// # Decoding
//
// Decode the header, then request the tables that are needed:
//
//	data, err := elf.ReadImage("/bin/true")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	f, err := elf.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	progs, err := f.Programs()
//	sections, err := f.Sections()
//
// The lower-level ParseHeader, ParsePrograms, ParseSections, and
// ResolveNames functions expose each stage separately.
//
// # Errors
//
// Header decoding is all-or-nothing. A bad magic, class, data encoding,
// OS/ABI, object type, or machine aborts the decode; match with errors.Is
// against ErrMalformedMagic, ErrUnsupportedClass, and the other sentinels.
//
// Table decoding is partial. ParsePrograms, ParseSections, and ResolveNames
// return every entry that decoded, plus a *errors.TableError naming the
// entries that did not. Callers decide whether a partial table is usable.
//
// Unrecognized segment types, section types, and flag values are not
// errors. The raw code is kept, Known reports false, and String renders the
// value as Unknown(0x..), UnknownFlags(0x..), or Null(0x..).
//
// # Flags
//
// Flag fields are only named when exactly one defined bit is set. A
// read+write segment decodes to ProgFlag(0x6), which prints as
// UnknownFlags(0x6); use Has or Perm to inspect individual bits.
package elf
