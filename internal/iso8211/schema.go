package iso8211

import (
	"strings"

	"github.com/vesseltrace/enc57/internal/encerr"
)

// DataStructure is the DDR field-control "data structure code" (ISO/IEC 8211
// §7.2.3, byte 0 of the field control field).
type DataStructure byte

const (
	StructureElementary DataStructure = '0'
	StructureVector      DataStructure = '1'
	StructureArray       DataStructure = '2'
	StructureConcatenated DataStructure = '3'
)

// DataType is the DDR field-control "data type code" (byte 1 of the field
// control field).
type DataType byte

const (
	TypeCharacterString DataType = '0'
	TypeImplicitPoint   DataType = '1'
	TypeExplicitPoint   DataType = '2'
	TypeCharacterBit    DataType = '5'
	TypeMixed           DataType = '6'
)

// SubfieldSlot binds one subfield label to the format atom(s) that fill it,
// in the order they appear within one repetition ("row") of a field's data.
// Formats has more than one entry only for a composite label: S-57's NAME
// subfield (S-57 Part 3 §2.2) is encoded as two consecutive binary atoms
// (a 1-byte RCNM, a 4-byte RCID) under the single array-descriptor label
// "NAME" rather than as two labels, so the label/format zip must special-
// case it instead of assuming one atom per label throughout.
type SubfieldSlot struct {
	Label   string
	Formats []FormatSpec
}

// FieldSchema is the decoded Data Descriptive Record entry for one field
// tag: its structure, the labels of its subfields, and how each subfield is
// physically encoded. A data record's field is decoded by repeatedly
// applying RowTemplate until the field's data is exhausted — this is what
// makes a single FieldSchema serve both singleton fields (DSID, DSPM: one
// row) and repeating-group fields (VRPT, FSPT, ATTF: N rows) uniformly.
type FieldSchema struct {
	Tag           string
	Name          string
	Structure     DataStructure
	Type          DataType
	RowTemplate   []SubfieldSlot
}

// fieldControlFieldSize is the fixed width (bytes) of the field control
// field at the start of a DDR field's descriptive area (ISO/IEC 8211
// §7.2.3): data structure code, data type code, and 7 auxiliary/reserved
// control bytes.
const fieldControlFieldSize = 9

// parseFieldSchema decodes one field's descriptive area from the DDR field
// area: a fixed 9-byte control field, then Name, an optional array
// descriptor, and format controls, each separated by unit terminators and
// the whole entry closed by a field terminator.
//
// Grounded on tburke/iso8211's FieldType.Read/Format, generalized so the
// array descriptor's labels are bound directly to expanded format atoms
// into a flat RowTemplate instead of returned as parallel untyped slices.
func parseFieldSchema(tag string, area []byte) (FieldSchema, error) {
	if len(area) < fieldControlFieldSize {
		return FieldSchema{}, encerr.ForTag(encerr.SchemaError, "field descriptive area shorter than control field", tag)
	}
	control := area[:fieldControlFieldSize]
	rest := area[fieldControlFieldSize:]

	schema := FieldSchema{
		Tag:       tag,
		Structure: DataStructure(control[0]),
		Type:      DataType(control[1]),
	}

	text := strings.TrimSuffix(string(rest), string(FieldTerminator))
	parts := strings.Split(text, string(UnitTerminator))

	switch schema.Structure {
	case StructureElementary:
		// Name only, no array descriptor: a single unnamed subfield spanning
		// the whole field.
		if len(parts) < 1 {
			return FieldSchema{}, encerr.ForTag(encerr.SchemaError, "elementary field missing name", tag)
		}
		schema.Name = parts[0]
		formatStr := ""
		if len(parts) >= 2 {
			formatStr = parts[len(parts)-1]
		}
		formats, err := parseFormatControls(formatStr)
		if err != nil {
			return FieldSchema{}, encerr.Wrap(encerr.SchemaError, "bad format controls for "+tag, err)
		}
		if len(formats) == 0 {
			formats = []FormatSpec{{Kind: KindASCIIChar, Width: 0}}
		}
		schema.RowTemplate = []SubfieldSlot{{Label: schema.Name, Formats: formats[:1]}}
		return schema, nil

	default:
		if len(parts) < 3 {
			return FieldSchema{}, encerr.ForTag(encerr.SchemaError, "vector/array field missing array descriptor or format controls", tag)
		}
		schema.Name = parts[0]
		arrayDescriptor := parts[1]
		formatStr := parts[2]

		labels := parseArrayDescriptor(arrayDescriptor)
		formats, err := parseFormatControls(formatStr)
		if err != nil {
			return FieldSchema{}, encerr.Wrap(encerr.SchemaError, "bad format controls for "+tag, err)
		}
		if len(labels) == 0 {
			labels = make([]string, len(formats))
			for i := range labels {
				labels[i] = tag
			}
		}

		slots := make([]SubfieldSlot, 0, len(labels))
		fi := 0
		for _, label := range labels {
			width := 1
			if label == "NAME" {
				width = 2 // RCNM + RCID, per the NAME composite (see SubfieldSlot doc)
			}
			if fi+width > len(formats) {
				return FieldSchema{}, encerr.ForTag(encerr.SchemaError,
					"array descriptor labels exceed expanded format count", tag)
			}
			slots = append(slots, SubfieldSlot{Label: label, Formats: formats[fi : fi+width]})
			fi += width
		}
		if fi != len(formats) {
			return FieldSchema{}, encerr.ForTag(encerr.SchemaError,
				"array descriptor label count does not match expanded format count", tag)
		}
		schema.RowTemplate = slots
		return schema, nil
	}
}

// parseArrayDescriptor splits a field's array descriptor on '!' into
// subfield labels. A leading '*' marks the first label as the repetition
// boundary for a vector/array structure; the decoder doesn't need that
// distinction (it always repeats the row template to fill the field), so
// the marker is stripped rather than retained.
func parseArrayDescriptor(desc string) []string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	labels := strings.Split(desc, "!")
	if len(labels) > 0 {
		labels[0] = strings.TrimPrefix(labels[0], "*")
	}
	return labels
}
