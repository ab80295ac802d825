package elf

import (
	"bytes"
	"encoding/binary"

	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// Offsets of the identity bytes.
const (
	identClass      = 4
	identData       = 5
	identVersion    = 6
	identOSABI      = 7
	identABIVersion = 8
	identPad        = 9
	identSize       = 16
)

// ParseHeader decodes the file header at offset 0. Any failure is fatal:
// no partial header is returned.
func ParseHeader(data []byte) (*Header, error) {
	// The identity bytes are single bytes; the order is fixed once the data
	// byte has been read.
	r := elfbin.NewReader(data, binary.LittleEndian)
	h := &Header{}

	magic, err := r.ReadBytes(len(Magic))
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "magic"}, err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return nil, errors.New(errors.PhaseHeader, errors.KindMalformedMagic).
			Path("ident", "magic").
			Value(append([]byte(nil), magic...)).
			Detail("got % x, want % x", magic, Magic[:]).
			Build()
	}

	class, err := r.ReadU8()
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "class"}, err)
	}
	h.Class = Class(class)
	if _, ok := classTable.lookup(h.Class); !ok {
		return nil, identError(errors.KindUnsupportedClass, "class", identClass, class)
	}

	order, err := r.ReadU8()
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "data"}, err)
	}
	h.Data = Data(order)
	bo := h.Data.ByteOrder()
	if bo == nil {
		return nil, identError(errors.KindUnsupportedEncoding, "data", identData, order)
	}
	r.SetOrder(bo)

	if h.IdentVersion, err = r.ReadU8(); err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "version"}, err)
	}

	abi, err := r.ReadU8()
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "osabi"}, err)
	}
	h.OSABI = OSABI(abi)
	if _, ok := osabiTable.lookup(h.OSABI); !ok {
		return nil, identError(errors.KindUnsupportedABI, "osabi", identOSABI, abi)
	}

	if h.ABIVersion, err = r.ReadU8(); err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "abiversion"}, err)
	}
	if err := r.Skip(identSize - identPad); err != nil {
		return nil, readError(errors.PhaseHeader, []string{"ident", "pad"}, err)
	}
	copy(h.Ident[:], data[:identSize])

	typ, err := r.ReadU16()
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"type"}, err)
	}
	h.Type = Type(typ)
	if _, ok := typeTable.lookup(h.Type); !ok {
		return nil, fieldError(errors.KindUnsupportedType, "type", r.Position()-2, typ)
	}

	machine, err := r.ReadU16()
	if err != nil {
		return nil, readError(errors.PhaseHeader, []string{"machine"}, err)
	}
	h.Machine = Machine(machine)
	if _, ok := machineTable.lookup(h.Machine); !ok {
		return nil, fieldError(errors.KindUnsupportedInstructionSet, "machine", r.Position()-2, machine)
	}

	if err := decodeHeaderTail(r, h); err != nil {
		return nil, err
	}

	Logger().Debug("decoded header",
		zapClass(h.Class),
		zapMachine(h.Machine),
		zapHex("entry", h.Entry),
		zapHex("phoff", h.PhOff),
		zapHex("shoff", h.ShOff),
	)
	return h, nil
}

// decodeHeaderTail reads the fields after machine. Entry and the two table
// offsets are word-sized; the rest have fixed widths.
func decodeHeaderTail(r *elfbin.Reader, h *Header) error {
	wide := h.Class.Wide()
	var err error

	read32 := func(field string, dst *uint32) {
		if err != nil {
			return
		}
		var v uint32
		if v, err = r.ReadU32(); err != nil {
			err = readError(errors.PhaseHeader, []string{field}, err)
			return
		}
		*dst = v
	}
	readWord := func(field string, dst *uint64) {
		if err != nil {
			return
		}
		var v uint64
		if v, err = r.ReadWord(wide); err != nil {
			err = readError(errors.PhaseHeader, []string{field}, err)
			return
		}
		*dst = v
	}
	read16 := func(field string, dst *uint16) {
		if err != nil {
			return
		}
		var v uint16
		if v, err = r.ReadU16(); err != nil {
			err = readError(errors.PhaseHeader, []string{field}, err)
			return
		}
		*dst = v
	}

	read32("version", &h.Version)
	readWord("entry", &h.Entry)
	readWord("phoff", &h.PhOff)
	readWord("shoff", &h.ShOff)
	read32("flags", &h.Flags)
	read16("ehsize", &h.EhSize)
	read16("phentsize", &h.PhEntSize)
	read16("phnum", &h.PhNum)
	read16("shentsize", &h.ShEntSize)
	read16("shnum", &h.ShNum)
	read16("shstrndx", &h.ShStrNdx)
	return err
}

func identError(kind errors.Kind, field string, off int, v uint8) error {
	return errors.New(errors.PhaseHeader, kind).
		Path("ident", field).
		Offset(int64(off)).
		Value(v).
		Detail("unsupported value %#x", v).
		Build()
}

func fieldError(kind errors.Kind, field string, off int, v uint16) error {
	err := errors.Unsupported(errors.PhaseHeader, kind, field, v)
	err.Offset = int64(off)
	return err
}
