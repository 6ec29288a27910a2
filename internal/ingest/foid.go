package ingest

import (
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// FoidDecodeSystem decodes a feature record's FOID field: the producer
// agency and feature identification number/subdivision that identify the
// same real-world feature stably across dataset editions, unlike Name
// (which is only stable within one dataset). FOID carries no Name
// composite of its own — AGEN/FIDN/FIDS are plain ASCII and binary ints.
func FoidDecodeSystem(rec *iso8211.DataRecord, name store.Name, st *store.Store) {
	rows := rec.RowsWithTag("FOID")
	if len(rows) == 0 {
		return
	}
	row := rows[0]
	st.SetFOID(name, store.FOID{
		Agency:                           int(row.Int("AGEN")),
		FeatureIdentificationNumber:      uint32(row.Int("FIDN")),
		FeatureIdentificationSubdivision: uint16(row.Int("FIDS")),
	})
}
