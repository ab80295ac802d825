package elf

import (
	"strconv"

	"go.uber.org/zap"

	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// Natural entry sizes per word class.
const (
	progEntSize32    = 32
	progEntSize64    = 56
	sectionEntSize32 = 40
	sectionEntSize64 = 64
)

// tableGeometry locates the entries of one header table.
type tableGeometry struct {
	phase   errors.Phase
	off     uint64
	count   int
	stride  uint64
	natural uint64
}

func newGeometry(phase errors.Phase, off uint64, entSize, count uint16, natural uint64) tableGeometry {
	stride := uint64(entSize)
	if stride == 0 {
		stride = natural
	}
	return tableGeometry{
		phase:   phase,
		off:     off,
		count:   int(count),
		stride:  stride,
		natural: natural,
	}
}

// entryOffset returns the file offset of entry i, or an error if the entry
// cannot lie within an image of size bytes.
func (g tableGeometry) entryOffset(i, size int) (uint64, error) {
	path := entryPath(i)
	if g.stride < g.natural {
		return 0, errors.New(g.phase, errors.KindInvalidData).
			Path(path...).
			Value(g.stride).
			Detail("entry size %d is smaller than the %d-byte layout", g.stride, g.natural).
			Build()
	}
	rel := uint64(i) * g.stride
	off := g.off + rel
	if off < g.off || off+g.natural < off || off+g.natural > uint64(size) {
		return 0, errors.OutOfBounds(g.phase, path, int64(off), int(g.natural), size)
	}
	return off, nil
}

// decodeTable runs decode for every entry. Entries that fail are logged and
// reported in a TableError; the rest are returned in table order.
func decodeTable[T any](data []byte, h *Header, g tableGeometry, decode func(*elfbin.Reader) (T, error)) ([]T, error) {
	out := make([]T, 0, g.count)
	failed := &errors.TableError{Phase: g.phase}
	r := elfbin.NewReader(data, h.ByteOrder())

	Logger().Debug("decoding table",
		zap.String("phase", string(g.phase)),
		zapHex("offset", g.off),
		zap.Int("count", g.count),
		zap.Uint64("stride", g.stride),
	)

	for i := 0; i < g.count; i++ {
		off, err := g.entryOffset(i, len(data))
		if err == nil {
			err = r.Seek(off)
		}
		var ent T
		if err == nil {
			ent, err = decode(r)
		}
		if err != nil {
			err = asEntryError(g.phase, i, err)
			Logger().Warn("dropping table entry",
				zap.String("phase", string(g.phase)),
				zap.Int("index", i),
				zap.Error(err),
			)
			failed.Add(i, err)
			continue
		}
		out = append(out, ent)
	}
	return out, failed.OrNil()
}

func asEntryError(phase errors.Phase, i int, err error) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return readError(phase, entryPath(i), err)
}

func entryPath(i int) []string {
	return []string{"entry", strconv.Itoa(i)}
}
