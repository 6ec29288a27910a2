// Package ingest drives five fixed-order systems over the ISO 8211 data
// record stream, each populating one component table of internal/store.
// A data record is examined by every system in turn; a system that finds
// none of its tags in that record does nothing. This keeps ingestion a
// single streaming pass — at most one record's rows are held at a time,
// matching internal/iso8211's own one-record-at-a-time decoding — while
// still letting each concern (identity, raw geometry, topology, producer
// identity, attributes/pointers) live in its own system instead of one
// monolithic per-record switch.
//
// Geometry resolution (walking topology into a feature's Point/Line/Area
// geometry) is deliberately not one of these systems: it is a read-time
// operation performed by internal/tts once every record has been ingested,
// since an edge's geometry may depend on nodes that appear later in the
// file.
package ingest

import (
	"io"

	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// Run streams every data record out of dec and applies the five systems to
// each in order, returning once dec is exhausted. Diagnostics accumulates
// non-fatal conditions (e.g. an unrecognized RCNM) encountered along the
// way; a decoder error aborts ingestion immediately, since the file itself
// is then untrustworthy.
func Run(dec *iso8211.Decoder, st *store.Store) ([]encerr.Diagnostic, error) {
	var diags []encerr.Diagnostic

	for {
		rec, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return diags, err
		}

		if hasTag(rec, "DSID") || hasTag(rec, "DSPM") {
			st.SetDatasetMeta(decodeDatasetMeta(rec, st.DatasetMeta()))
		}

		diags = append(diags, NameDecodeSystem(rec, st)...)

		vecName, isVector := recordVectorName(rec)
		featName, isFeature := recordFeatureName(rec)

		if isVector {
			GeometrySystem(rec, vecName, st)
			TopologySystem(rec, vecName, st)
		}
		if isFeature {
			FoidDecodeSystem(rec, featName, st)
			FeatureBindSystem(rec, featName, st)
		}

		if !hasTag(rec, "VRID") && !isFeature && !hasTag(rec, "DSID") && !hasTag(rec, "DSPM") {
			diags = append(diags, encerr.Diagnostic{
				Kind:    encerr.UnknownRecordKind,
				Message: "data record carries neither VRID nor FRID",
			})
		}
	}

	return diags, nil
}

func hasTag(rec *iso8211.DataRecord, tag string) bool {
	for _, r := range rec.Rows {
		if r.Tag == tag {
			return true
		}
	}
	return false
}

// recordVectorName returns the Name a vector data record's VRID establishes,
// if present and its RCNM is one of the defined vector kinds. An invalid
// RCNM was already skipped (and diagnosed) by NameDecodeSystem, so the
// record carries no vector identity for GeometrySystem/TopologySystem to
// attach to.
func recordVectorName(rec *iso8211.DataRecord) (store.Name, bool) {
	rows := rec.RowsWithTag("VRID")
	if len(rows) == 0 {
		return store.Name{}, false
	}
	row := rows[0]
	if !store.VectorKind(row.Int("RCNM")).Valid() {
		return store.Name{}, false
	}
	return store.NewName(byte(row.Int("RCNM")), uint32(row.Int("RCID"))), true
}

// recordFeatureName returns the Name a feature data record's FRID
// establishes, if present.
func recordFeatureName(rec *iso8211.DataRecord) (store.Name, bool) {
	rows := rec.RowsWithTag("FRID")
	if len(rows) == 0 {
		return store.Name{}, false
	}
	row := rows[0]
	return store.NewName(byte(row.Int("RCNM")), uint32(row.Int("RCID"))), true
}
