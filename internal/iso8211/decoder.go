// Package iso8211 decodes the ISO/IEC 8211 tag-structured interchange
// format that both the Data Descriptive Record (DDR) schema and every data
// record to follow are built on. It is a from-scratch, in-module decoder
// grounded on tburke/iso8211's standalone implementation — the upstream
// project this repository's domain (S-57 chart parsing) would otherwise
// depend on vendors its own codec as a sibling module that isn't fetchable
// from outside that project's workspace, so the format-control grammar and
// leader/directory layout are re-derived here instead of imported.
package iso8211

import (
	"io"
	"strings"

	"github.com/vesseltrace/enc57/internal/encerr"
)

// SubfieldValue is one decoded subfield. For an ordinary (single-atom)
// subfield, Kind/Str/Int/Raw hold its value: Str for KindASCIIChar/
// KindASCIIReal (kept as text), Int for KindASCIIInt/KindBinaryUint/KindBinaryInt, Raw for
// KindBitField. For a composite subfield (the NAME label, see SubfieldSlot),
// Parts holds each atom's decoded integer in order instead.
type SubfieldValue struct {
	Kind  FormatKind
	Str   string
	Int   int64
	Raw   []byte
	Parts []int64
}

// RecordRow is one repetition of a field's subfields, keyed by subfield
// label. A singleton field (DSID, DSPM) decodes to exactly one RecordRow; a
// repeating field (VRPT, FSPT, ATTF) decodes to one RecordRow per entry.
type RecordRow struct {
	Tag    string
	Fields map[string]SubfieldValue
}

// Int looks up an integer-valued subfield, returning 0 if absent.
func (r RecordRow) Int(label string) int64 { return r.Fields[label].Int }

// Str looks up a text-valued subfield, returning "" if absent.
func (r RecordRow) Str(label string) string { return r.Fields[label].Str }

// Raw looks up a bit-field-valued subfield, returning nil if absent.
func (r RecordRow) Raw(label string) []byte { return r.Fields[label].Raw }

// Parts looks up a composite subfield's decoded atoms (e.g. NAME's
// [RCNM, RCID]), returning nil if absent.
func (r RecordRow) Parts(label string) []int64 { return r.Fields[label].Parts }

// DataRecord is one decoded data record: its leader and every row decoded
// from its fields, in directory order, rows within a field in on-disk
// order.
type DataRecord struct {
	Leader Leader
	Rows   []RecordRow
}

// RowsWithTag filters a record's rows down to a single field tag.
func (d DataRecord) RowsWithTag(tag string) []RecordRow {
	var out []RecordRow
	for _, r := range d.Rows {
		if r.Tag == tag {
			out = append(out, r)
		}
	}
	return out
}

// Decoder streams records out of an ISO 8211 file one at a time: at most one
// record's bytes are held live at any moment, beyond the underlying buffer
// itself (typically memory-mapped, see internal/ioacq).
//
// Decoder first consumes the leading DDR to build the field schema, then
// Next decodes each following data record against that schema.
type Decoder struct {
	buf    []byte
	pos    int
	fields map[string]FieldSchema
}

// NewDecoder parses buf's leading Data Descriptive Record and returns a
// Decoder positioned at the first data record.
func NewDecoder(buf []byte) (*Decoder, error) {
	c := NewByteCursor(buf)
	leader, err := parseLeader(c)
	if err != nil {
		return nil, err
	}
	if leader.LeaderID != 'L' {
		return nil, encerr.AtOffset(encerr.LeaderMalformed, "first record is not a DDR", 0)
	}
	dir, err := parseDirectory(c, leader)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]FieldSchema, len(dir))
	for _, entry := range dir {
		if entry.Tag == "0000" {
			// The DDR's own field-control-field directory entry (describes
			// the field tags themselves, not a data field); not needed once
			// every other tag's schema has been parsed.
			continue
		}
		fieldStart := leader.BaseAddress + entry.Position
		if fieldStart < 0 || fieldStart+entry.Length > len(buf) {
			return nil, encerr.ForTag(encerr.SchemaError, "field area out of bounds", entry.Tag)
		}
		area := buf[fieldStart : fieldStart+entry.Length]
		schema, err := parseFieldSchema(entry.Tag, area)
		if err != nil {
			return nil, err
		}
		fields[entry.Tag] = schema
	}

	return &Decoder{buf: buf, pos: leader.BaseAddress + directoryDataLength(dir, leader), fields: fields}, nil
}

// directoryDataLength returns the total byte length of the DDR's field
// area, i.e. how far past BaseAddress the next record's leader begins.
func directoryDataLength(dir []DirEntry, l Leader) int {
	max := 0
	for _, e := range dir {
		if end := e.Position + e.Length; end > max {
			max = end
		}
	}
	return max
}

// Fields exposes the decoded DDR schema, keyed by field tag.
func (d *Decoder) Fields() map[string]FieldSchema { return d.fields }

// Next decodes the next data record. It returns io.EOF once the buffer is
// exhausted.
func (d *Decoder) Next() (*DataRecord, error) {
	if d.pos >= len(d.buf) {
		return nil, io.EOF
	}

	c := NewByteCursor(d.buf[d.pos:])
	recordStart := d.pos
	leader, err := parseLeader(c)
	if err != nil {
		return nil, err
	}
	if leader.LeaderID != 'D' {
		return nil, encerr.AtOffset(encerr.LeaderMalformed, "expected data record leader", recordStart)
	}
	dir, err := parseDirectory(c, leader)
	if err != nil {
		return nil, err
	}

	rec := &DataRecord{Leader: leader}
	base := d.buf[recordStart:]
	for _, entry := range dir {
		fieldStart := leader.BaseAddress + entry.Position
		if fieldStart < 0 || fieldStart+entry.Length > len(base) {
			return nil, encerr.ForTag(encerr.SubfieldOverrun, "field area out of bounds", entry.Tag)
		}
		schema, ok := d.fields[entry.Tag]
		if !ok {
			return nil, encerr.ForTag(encerr.SchemaError, "data record references tag absent from DDR", entry.Tag)
		}
		area := base[fieldStart : fieldStart+entry.Length]
		rows, err := decodeFieldRows(schema, area)
		if err != nil {
			return nil, err
		}
		rec.Rows = append(rec.Rows, rows...)
	}

	d.pos = recordStart + leader.RecordLength
	return rec, nil
}

// decodeFieldRows repeatedly applies schema's RowTemplate to data until it is
// exhausted, producing one RecordRow per repetition. A singleton field's
// data contains exactly one row's worth of bytes; a repeating field's (VRPT,
// FSPT, ATTF, ...) data contains N.
func decodeFieldRows(schema FieldSchema, data []byte) ([]RecordRow, error) {
	if len(data) > 0 && data[len(data)-1] == FieldTerminator {
		data = data[:len(data)-1]
	}

	var rows []RecordRow
	c := NewByteCursor(data)
	for c.Remaining() > 0 {
		row := RecordRow{Tag: schema.Tag, Fields: make(map[string]SubfieldValue, len(schema.RowTemplate))}
		for _, slot := range schema.RowTemplate {
			val, err := decodeSubfieldSlot(c, slot)
			if err != nil {
				return nil, encerr.Wrap(encerr.SubfieldOverrun,
					"decoding subfield "+slot.Label+" of "+schema.Tag, err)
			}
			row.Fields[slot.Label] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeSubfieldSlot decodes slot's one or more format atoms. A single-atom
// slot yields an ordinary scalar value; a multi-atom (composite) slot, e.g.
// NAME, yields its atoms as Parts in order.
func decodeSubfieldSlot(c *ByteCursor, slot SubfieldSlot) (SubfieldValue, error) {
	if len(slot.Formats) == 1 {
		return decodeSubfield(c, slot.Formats[0])
	}
	parts := make([]int64, 0, len(slot.Formats))
	for _, f := range slot.Formats {
		v, err := decodeSubfield(c, f)
		if err != nil {
			return SubfieldValue{}, err
		}
		parts = append(parts, v.Int)
	}
	return SubfieldValue{Parts: parts}, nil
}

func decodeSubfield(c *ByteCursor, f FormatSpec) (SubfieldValue, error) {
	switch f.Kind {
	case KindASCIIChar:
		if f.Width > 0 {
			b, err := c.ReadBytes(f.Width)
			if err != nil {
				return SubfieldValue{}, err
			}
			return SubfieldValue{Kind: f.Kind, Str: strings.TrimRight(string(b), " ")}, nil
		}
		b := c.ReadDelimited(UnitTerminator)
		return SubfieldValue{Kind: f.Kind, Str: string(b)}, nil

	case KindASCIIReal:
		b, err := c.ReadBytes(f.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: f.Kind, Str: strings.TrimSpace(string(b))}, nil

	case KindASCIIInt:
		v, err := c.ReadFixedASCIIInt(f.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: f.Kind, Int: v}, nil

	case KindBitField:
		b, err := c.ReadBytes(f.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: f.Kind, Raw: b}, nil

	case KindBinaryUint:
		v, err := c.ReadLEUint(f.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: f.Kind, Int: int64(v)}, nil

	case KindBinaryInt:
		v, err := c.ReadLEInt(f.Width)
		if err != nil {
			return SubfieldValue{}, err
		}
		return SubfieldValue{Kind: f.Kind, Int: v}, nil

	default:
		return SubfieldValue{}, encerr.New(encerr.SchemaError, "unhandled format kind")
	}
}
