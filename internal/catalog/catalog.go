// Package catalog resolves the numeric object-class and attribute codes a
// chart's features carry into their human-readable acronyms and names.
// Nothing downstream depends on the catalogue being complete or even
// present — a code with no entry is reported as a miss, which pkg/enc57
// degrades to the bare numeric code plus a CatalogueMiss diagnostic, never
// a hard failure (a chart should still
// render with an out-of-date or partial catalogue).
//
// Exposed as a Catalogue interface with a default CSV-backed implementation,
// so a caller (or a future edition of the catalogue) can supply an
// alternative without touching the core decoder.
package catalog

import (
	"encoding/csv"
	_ "embed"
	"strconv"
	"strings"
)

//go:embed s57objects.csv
var embeddedCSV string

// Catalogue resolves object-class and attribute codes to their acronym and
// descriptive name. A miss is reported via the bool return, never an error:
// an unrecognized code is an ordinary, expected occurrence (a newer edition
// of the object catalogue than this build knows about), not a decoder
// fault.
type Catalogue interface {
	ObjectClass(code int) (acronym, name string, ok bool)
	Attribute(code int) (acronym, name string, valtype ValueType, ok bool)
}

// ValueType is an attribute's defined domain, per the S-57 attribute
// catalogue: how its ATVL/ATTF value is meant to be interpreted.
type ValueType int

const (
	ValueTypeUnknown ValueType = iota
	ValueTypeEnumerated
	ValueTypeList
	ValueTypeFloat
	ValueTypeInteger
	ValueTypeCodedString
	ValueTypeFreeText
)

func (v ValueType) String() string {
	switch v {
	case ValueTypeEnumerated:
		return "Enumerated"
	case ValueTypeList:
		return "List"
	case ValueTypeFloat:
		return "Float"
	case ValueTypeInteger:
		return "Integer"
	case ValueTypeCodedString:
		return "CodedString"
	case ValueTypeFreeText:
		return "FreeText"
	default:
		return "Unknown"
	}
}

type entry struct {
	acronym string
	name    string
}

type attrEntry struct {
	entry
	valtype ValueType
}

// csvCatalogue is the default Catalogue, loaded from an embedded CSV of
// (kind, code, acronym, name, valtype) rows.
type csvCatalogue struct {
	objects    map[int]entry
	attributes map[int]attrEntry
}

var defaultCatalogue *csvCatalogue

// Default returns the built-in catalogue, parsing the embedded CSV on first
// use.
func Default() Catalogue {
	if defaultCatalogue == nil {
		defaultCatalogue = mustParse(embeddedCSV)
	}
	return defaultCatalogue
}

func mustParse(data string) *csvCatalogue {
	cat := &csvCatalogue{objects: make(map[int]entry), attributes: make(map[int]attrEntry)}
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = 5
	rows, err := r.ReadAll()
	if err != nil {
		// The embedded catalogue is a build-time asset, not user input; a
		// malformed CSV here is a programming error, not a runtime one.
		panic("catalog: malformed embedded s57objects.csv: " + err.Error())
	}
	for _, row := range rows {
		if row[0] == "kind" {
			continue // header
		}
		code, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		e := entry{acronym: row[2], name: row[3]}
		switch row[0] {
		case "object":
			cat.objects[code] = e
		case "attribute":
			cat.attributes[code] = attrEntry{entry: e, valtype: parseValueType(row[4])}
		}
	}
	return cat
}

func parseValueType(s string) ValueType {
	switch s {
	case "enumerated":
		return ValueTypeEnumerated
	case "list":
		return ValueTypeList
	case "float":
		return ValueTypeFloat
	case "integer":
		return ValueTypeInteger
	case "codedstring":
		return ValueTypeCodedString
	case "freetext":
		return ValueTypeFreeText
	default:
		return ValueTypeUnknown
	}
}

func (c *csvCatalogue) ObjectClass(code int) (string, string, bool) {
	e, ok := c.objects[code]
	return e.acronym, e.name, ok
}

func (c *csvCatalogue) Attribute(code int) (string, string, ValueType, bool) {
	e, ok := c.attributes[code]
	return e.acronym, e.name, e.valtype, ok
}
