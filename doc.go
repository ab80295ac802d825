// Package elfkit decodes the headers of ELF object files.
//
// The library turns a raw byte image into a read-only model of the file
// header, the program header table, the section header table, and the
// section names. It handles 32- and 64-bit images in either byte order and
// never reads outside the image.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	elfkit/
//	├── elf/             Header, program, and section decoding, name resolution
//	├── dump/            Section data extraction and hexdumps
//	├── errors/          Structured error types for debugging
//	└── cmd/elfinfo/     Command-line inspector
//
// # Quick Start
//
// Decode a file and list its sections:
//
//	f, err := elf.Open("/bin/true")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sections, err := f.Sections()
//	if err != nil {
//	    log.Printf("partial table: %v", err)
//	}
//	for _, s := range sections {
//	    fmt.Println(s.Name, s.Type, s.Flags.Letters())
//	}
//
// # Partial Tables
//
// The header is all-or-nothing. Table entries are decoded independently: an
// entry that cannot be read is dropped and reported in an
// *errors.TableError returned alongside the entries that did decode.
//
// # Unknown Values
//
// Enumerated fields keep their raw code. Values outside the named set are
// never errors; String reports them as Unknown(0x..), UnknownFlags(0x..), or
// Null(0x..), and Known reports false.
//
// # Thread Safety
//
// A decoded elf.File is immutable and safe for concurrent use. Set the
// package logger with elf.SetLogger before decoding.
package elfkit
