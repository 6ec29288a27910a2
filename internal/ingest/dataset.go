package ingest

import (
	"strings"

	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// decodeDatasetMeta reads a record's DSID/DSPM rows into a DatasetMeta,
// starting from the defaults and overwriting only what each field supplies —
// the two fields usually arrive in the same record, but nothing requires it.
func decodeDatasetMeta(rec *iso8211.DataRecord, base store.DatasetMeta) store.DatasetMeta {
	meta := base
	for _, row := range rec.RowsWithTag("DSID") {
		meta.DatasetName = strings.TrimSpace(row.Str("DSNM"))
		meta.Edition = int(row.Int("EDTN"))
		meta.UpdateNumber = int(row.Int("UPDN"))
		meta.ProducingAgency = int(row.Int("AGEN"))
		meta.IssueDate = strings.TrimSpace(row.Str("ISDT"))
	}
	for _, row := range rec.RowsWithTag("DSPM") {
		meta.HorizontalDatum = strings.TrimSpace(row.Str("HDAT"))
		meta.VerticalDatum = strings.TrimSpace(row.Str("VDAT"))
		meta.SoundingDatum = strings.TrimSpace(row.Str("SDAT"))
		meta.CompilationScale = int(row.Int("CSCL"))
		meta.CoordinateUnits = int(row.Int("DUNI"))
		if comf := row.Int("COMF"); comf != 0 {
			meta.COMF = comf
		}
		if somf := row.Int("SOMF"); somf != 0 {
			meta.SOMF = somf
		}
	}
	return meta
}
