package ingest

import (
	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// NameDecodeSystem registers a record's identity in the store: a vector
// record's VRID becomes a VectorMeta, a feature record's FRID becomes a
// FeatureMeta. It runs first among the five ingestion systems because every
// other system attaches components by Name, and a Name must exist in its
// table before anything else can be attached to it.
//
// A VRID whose RCNM falls outside the four defined vector kinds is
// UnknownRecordKind (spec.md §7 item 5): the record is skipped rather than
// registered under a kind nothing else recognizes, and a Diagnostic reports
// it instead of failing the whole file.
func NameDecodeSystem(rec *iso8211.DataRecord, st *store.Store) []encerr.Diagnostic {
	var diags []encerr.Diagnostic

	for _, row := range rec.RowsWithTag("VRID") {
		kind := store.VectorKind(row.Int("RCNM"))
		name := store.NewName(byte(row.Int("RCNM")), uint32(row.Int("RCID")))
		if !kind.Valid() {
			diags = append(diags, encerr.Diagnostic{
				Kind:    encerr.UnknownRecordKind,
				Message: "VRID carries an RCNM outside the defined vector-kind set, record skipped",
				Name:    name.String(),
			})
			continue
		}
		st.CreateVector(store.VectorMeta{
			Name:          name,
			Kind:          kind,
			RecordVersion: int32(row.Int("RVER")),
		})
	}

	for _, row := range rec.RowsWithTag("FRID") {
		name := store.NewName(byte(row.Int("RCNM")), uint32(row.Int("RCID")))
		st.CreateFeature(store.FeatureMeta{
			Name:              name,
			Primitive:         store.Primitive(row.Int("PRIM")),
			ObjectClassCode:   int(row.Int("OBJL")),
			Group:             int(row.Int("GRUP")),
			RecordVersion:     int32(row.Int("RVER")),
			UpdateInstruction: byte(row.Int("RUIN")),
		})
	}

	return diags
}
