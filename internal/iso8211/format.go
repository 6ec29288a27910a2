package iso8211

import (
	"strconv"

	"github.com/vesseltrace/enc57/internal/encerr"
)

// FormatKind is the data type a FormatSpec subfield decodes to.
type FormatKind int

const (
	// KindASCIIChar is 'A(n)' (fixed) or 'A' (delimited by a terminator).
	KindASCIIChar FormatKind = iota
	// KindASCIIInt is 'I(n)': a fixed-width ASCII integer.
	KindASCIIInt
	// KindASCIIReal is 'R(n)': a fixed-width ASCII real number, kept as string.
	KindASCIIReal
	// KindBitField is 'B(n)': an n-bit opaque bit field, kept as raw bytes.
	KindBitField
	// KindBinaryUint is 'b1w': an unsigned binary integer of w bytes.
	KindBinaryUint
	// KindBinaryInt is 'b2w': a signed (two's complement) binary integer of w bytes.
	KindBinaryInt
)

// FormatSpec is one parsed subfield format-control entry, not yet bound to a
// subfield label (binding happens when FormatSpec list is zipped against the
// field's array descriptor in schema.go).
//
// Width is in bytes for KindBinaryUint/KindBinaryInt/KindBitField and
// KindASCIIInt/KindASCIIReal/fixed KindASCIIChar; 0 for a delimited
// KindASCIIChar ('A' with no parenthesised width), meaning "read until a
// unit or field terminator".
type FormatSpec struct {
	Kind  FormatKind
	Width int
}

// parseFormatControls parses a DDR format-controls string, e.g.
// "(A(2),I(5),b12,B(16))" or "(b11,2b24,A(3),B(40))", into a flat,
// left-to-right sequence of FormatSpec. A leading multiplier on any item
// (e.g. "3I(4)") or on a parenthesised group (e.g. "2(A(2),I(4))") expands
// into that many repeated entries.
//
// Grounded on tburke/iso8211's FieldType.Format, generalized from a regex
// scan into an explicit recursive-descent parser so malformed format
// strings produce a SchemaError instead of being silently skipped.
func parseFormatControls(raw string) ([]FormatSpec, error) {
	p := &formatParser{s: raw}
	opened := p.skipByte('(')
	specs, err := p.parseList(!opened)
	if err != nil {
		return nil, err
	}
	return specs, nil
}

type formatParser struct {
	s   string
	pos int
}

func (p *formatParser) skipByte(b byte) bool {
	if p.pos < len(p.s) && p.s[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *formatParser) eof() bool { return p.pos >= len(p.s) }

func (p *formatParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

// parseList parses a comma-separated list of items until ')' or end of
// string. top is true only for a format-controls string with no opening
// paren of its own, where running out of input ends the list; otherwise a
// closing ')' is required and consumed.
func (p *formatParser) parseList(top bool) ([]FormatSpec, error) {
	var out []FormatSpec
	for {
		if p.eof() || p.peek() == ')' {
			break
		}
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		out = append(out, item...)
		if p.skipByte(',') {
			continue
		}
		break
	}
	if p.skipByte(')') {
		return out, nil
	}
	if top && p.eof() {
		return out, nil
	}
	return nil, encerr.New(encerr.SchemaError, "expected ')' in format controls at offset "+strconv.Itoa(p.pos))
}

// parseItem parses one [count](atom|group) item and returns it expanded
// count times.
func (p *formatParser) parseItem() ([]FormatSpec, error) {
	count := p.parseCount()
	if count == 0 {
		count = 1
	}

	var unit []FormatSpec
	if p.skipByte('(') {
		group, err := p.parseList(false)
		if err != nil {
			return nil, err
		}
		unit = group
	} else {
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		unit = []FormatSpec{atom}
	}

	out := make([]FormatSpec, 0, len(unit)*count)
	for i := 0; i < count; i++ {
		out = append(out, unit...)
	}
	return out, nil
}

func (p *formatParser) parseCount() int {
	start := p.pos
	for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0
	}
	n, _ := strconv.Atoi(p.s[start:p.pos])
	return n
}

func (p *formatParser) parseAtom() (FormatSpec, error) {
	if p.eof() {
		return FormatSpec{}, encerr.New(encerr.SchemaError, "unexpected end of format controls")
	}
	c := p.s[p.pos]
	p.pos++
	switch c {
	case 'A':
		width := p.parseOptionalWidth()
		return FormatSpec{Kind: KindASCIIChar, Width: width}, nil
	case 'I':
		width, err := p.parseRequiredWidth("I")
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: KindASCIIInt, Width: width}, nil
	case 'R':
		width, err := p.parseRequiredWidth("R")
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: KindASCIIReal, Width: width}, nil
	case 'B':
		bits, err := p.parseRequiredWidth("B")
		if err != nil {
			return FormatSpec{}, err
		}
		return FormatSpec{Kind: KindBitField, Width: (bits + 7) / 8}, nil
	case 'b':
		if p.pos+1 >= len(p.s)+1 || p.pos+1 > len(p.s) {
			return FormatSpec{}, encerr.New(encerr.SchemaError, "truncated binary format control 'b'")
		}
		typeDigit, widthDigit, err := p.readTwoDigits()
		if err != nil {
			return FormatSpec{}, err
		}
		kind := KindBinaryUint
		switch typeDigit {
		case '1':
			kind = KindBinaryUint
		case '2':
			kind = KindBinaryInt
		default:
			return FormatSpec{}, encerr.New(encerr.SchemaError, "binary format type must be 1 or 2")
		}
		width := int(widthDigit - '0')
		if width != 1 && width != 2 && width != 4 {
			return FormatSpec{}, encerr.New(encerr.SchemaError, "binary format width must be 1, 2, or 4")
		}
		return FormatSpec{Kind: kind, Width: width}, nil
	default:
		return FormatSpec{}, encerr.New(encerr.SchemaError, "unrecognized format control character '"+string(c)+"'")
	}
}

func (p *formatParser) readTwoDigits() (byte, byte, error) {
	if p.pos+2 > len(p.s) {
		return 0, 0, encerr.New(encerr.SchemaError, "truncated binary format control")
	}
	a, b := p.s[p.pos], p.s[p.pos+1]
	p.pos += 2
	return a, b, nil
}

// parseOptionalWidth parses an optional "(n)" suffix, returning 0 if absent
// (meaning: delimited by a terminator rather than fixed-width).
func (p *formatParser) parseOptionalWidth() int {
	if !p.skipByte('(') {
		return 0
	}
	n := p.parseCount()
	p.skipByte(')')
	return n
}

func (p *formatParser) parseRequiredWidth(tag string) (int, error) {
	if !p.skipByte('(') {
		return 0, encerr.New(encerr.SchemaError, tag+" requires a parenthesised width")
	}
	n := p.parseCount()
	if !p.skipByte(')') {
		return 0, encerr.New(encerr.SchemaError, tag+" width not terminated by ')'")
	}
	return n, nil
}
