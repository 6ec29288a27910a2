package iso8211

import (
	"strconv"
	"strings"

	"github.com/vesseltrace/enc57/internal/encerr"
)

// Unit and field terminators per ISO/IEC 8211.
const (
	UnitTerminator  byte = 0x1F
	FieldTerminator byte = 0x1E
)

// ByteCursor is a bounds-checked cursor over a fixed byte buffer. It never
// re-reads: every read advances the offset, and every overrun is reported as
// a structured encerr.Error carrying the offset at which it occurred.
//
// ByteCursor reads directly over the buffer it's given (typically a memory
// mapped file, see internal/ioacq) — it never copies the whole buffer.
type ByteCursor struct {
	buf []byte
	pos int
}

// NewByteCursor wraps buf for bounded, forward-only reads starting at 0.
func NewByteCursor(buf []byte) *ByteCursor {
	return &ByteCursor{buf: buf}
}

// Offset returns the current read position.
func (c *ByteCursor) Offset() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *ByteCursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute offset. Used to jump to a field's
// base-address-relative position once the directory has been parsed.
func (c *ByteCursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return encerr.AtOffset(encerr.IoError, "seek out of range", offset)
	}
	c.pos = offset
	return nil
}

// ReadBytes returns the next n bytes and advances the cursor. The returned
// slice aliases the underlying buffer.
func (c *ByteCursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, encerr.AtOffset(encerr.SubfieldOverrun,
			"read past end of buffer", c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// PeekBytes returns the next n bytes without advancing the cursor.
func (c *ByteCursor) PeekBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, encerr.AtOffset(encerr.SubfieldOverrun,
			"peek past end of buffer", c.pos)
	}
	return c.buf[c.pos : c.pos+n], nil
}

// ReadFixedASCIIInt reads a width-byte, space-padded ASCII integer and
// advances the cursor. Used for leader fields (record length, base address,
// ...) which are always fixed-width decimal ASCII.
func (c *ByteCursor) ReadFixedASCIIInt(width int) (int64, error) {
	b, err := c.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, encerr.AtOffset(encerr.LeaderMalformed,
			"not a fixed-width ASCII integer: "+strconv.Quote(string(b)), c.pos-width)
	}
	return v, nil
}

// ReadLEUint reads a width-byte little-endian unsigned integer, width in
// {1,2,3,4}, and advances the cursor. This is the binary subfield format
// ('b1'-prefixed format controls, e.g. b11/b12/b14).
func (c *ByteCursor) ReadLEUint(width int) (uint64, error) {
	if width < 1 || width > 4 {
		return 0, encerr.AtOffset(encerr.SchemaError,
			"unsigned binary width must be 1-4", c.pos)
	}
	b, err := c.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// ReadLEInt reads a width-byte little-endian two's-complement signed
// integer, width in {1,2,4}, and advances the cursor. ('b2'-prefixed format
// controls, e.g. b21/b22/b24).
func (c *ByteCursor) ReadLEInt(width int) (int64, error) {
	u, err := c.ReadLEUint(width)
	if err != nil {
		return 0, err
	}
	bits := uint(width) * 8
	signBit := uint64(1) << (bits - 1)
	if u&signBit != 0 {
		return int64(u) - int64(1<<bits), nil
	}
	return int64(u), nil
}

// ReadUntil reads bytes up to and including term, and returns the bytes
// before the terminator (excluding it). If the buffer runs out before the
// terminator is found, it is a SubfieldOverrun.
func (c *ByteCursor) ReadUntil(term byte) ([]byte, error) {
	start := c.pos
	for c.pos < len(c.buf) {
		if c.buf[c.pos] == term {
			out := c.buf[start:c.pos]
			c.pos++ // consume the terminator
			return out, nil
		}
		c.pos++
	}
	c.pos = start
	return nil, encerr.AtOffset(encerr.SubfieldOverrun,
		"terminator not found before end of buffer", start)
}

// ReadDelimited reads bytes up to term, consuming it if present, but — unlike
// ReadUntil — tolerates running out of buffer first: the last delimited
// subfield in a field's last row has no trailing unit terminator, only the
// field terminator already stripped by the caller. Used for variable-length
// ('A' with no width) subfields.
func (c *ByteCursor) ReadDelimited(term byte) []byte {
	start := c.pos
	for c.pos < len(c.buf) {
		if c.buf[c.pos] == term {
			out := c.buf[start:c.pos]
			c.pos++
			return out
		}
		c.pos++
	}
	return c.buf[start:c.pos]
}
