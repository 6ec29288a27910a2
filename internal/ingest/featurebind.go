package ingest

import (
	"encoding/binary"

	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// decodeLNAM unpacks FFPT's LNAM subfield: unlike FSPT/VRPT's NAME (which
// the DDR's own array descriptor splits into two format atoms), LNAM is
// encoded as one opaque 8-byte bit field packing AGEN/FIDN/FIDS together, so
// it has to be unpacked by hand at this layer rather than by the decoder.
func decodeLNAM(raw []byte) store.FOID {
	return store.FOID{
		Agency:                           int(binary.LittleEndian.Uint16(raw[0:2])),
		FeatureIdentificationNumber:      binary.LittleEndian.Uint32(raw[2:6]),
		FeatureIdentificationSubdivision: binary.LittleEndian.Uint16(raw[6:8]),
	}
}

// FeatureBindSystem decodes a feature record's FSPT field (the spatial
// objects it's made of, in producer order) into FeaturePointers, its FFPT
// field (links to other features) into FeatureRelations, and its ATTF/NATF
// fields (attribute code/value pairs) into Attributes. It runs last because
// it's the system with nothing downstream depending on it.
func FeatureBindSystem(rec *iso8211.DataRecord, name store.Name, st *store.Store) {
	if rows := rec.RowsWithTag("FSPT"); len(rows) > 0 {
		pointers := make([]store.FeaturePointer, 0, len(rows))
		for _, row := range rows {
			parts := row.Parts("NAME")
			if len(parts) != 2 {
				continue
			}
			pointers = append(pointers, store.FeaturePointer{
				Target:      store.NewName(byte(parts[0]), uint32(parts[1])),
				Orientation: store.Orientation(row.Int("ORNT")),
				Usage:       store.UsageIndicator(row.Int("USAG")),
				Mask:        store.MaskIndicator(row.Int("MASK")),
			})
		}
		st.SetFeaturePointers(name, store.FeaturePointers{Pointers: pointers})
	}

	if rows := rec.RowsWithTag("FFPT"); len(rows) > 0 {
		relations := make([]store.FeatureRelation, 0, len(rows))
		for _, row := range rows {
			lnam := row.Raw("LNAM")
			if len(lnam) != 8 {
				continue
			}
			relations = append(relations, store.FeatureRelation{
				Related:      decodeLNAM(lnam),
				Relationship: store.RelationshipIndicator(row.Int("RIND")),
				Comment:      row.Str("COMT"),
			})
		}
		st.SetFeatureRelations(name, store.FeatureRelations{Relations: relations})
	}

	attfRows := rec.RowsWithTag("ATTF")
	natfRows := rec.RowsWithTag("NATF")
	if len(attfRows)+len(natfRows) == 0 {
		return
	}
	values := make(map[int]store.AttributeValue, len(attfRows)+len(natfRows))
	for _, row := range attfRows {
		code := int(row.Int("ATTL"))
		values[code] = store.AttributeValue{Code: code, Str: row.Str("ATVL")}
	}
	for _, row := range natfRows {
		code := int(row.Int("ATTL"))
		values[code] = store.AttributeValue{Code: code, Str: row.Str("ATVL")}
	}
	if existing, ok := st.AttributesOf(name); ok {
		for k, v := range existing.Values {
			if _, present := values[k]; !present {
				values[k] = v
			}
		}
	}
	st.SetAttributes(name, store.Attributes{Values: values})
}
