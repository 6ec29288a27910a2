package ingest

import (
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// TopologySystem decodes a vector record's VRPT field into VectorTopology:
// the other vector records it points at, with the TOPI role (beginning
// node, end node, left/right face, ...) that gives internal/tts's edge
// walker something to dispatch on. Isolated nodes and faces rarely carry
// VRPT rows; edges always carry exactly two (their bounding nodes).
func TopologySystem(rec *iso8211.DataRecord, name store.Name, st *store.Store) {
	rows := rec.RowsWithTag("VRPT")
	if len(rows) == 0 {
		return
	}

	pointers := make([]store.VectorPointer, 0, len(rows))
	for _, row := range rows {
		parts := row.Parts("NAME")
		if len(parts) != 2 {
			continue
		}
		pointers = append(pointers, store.VectorPointer{
			Target:      store.NewName(byte(parts[0]), uint32(parts[1])),
			Orientation: store.Orientation(row.Int("ORNT")),
			Usage:       store.UsageIndicator(row.Int("USAG")),
			Topology:    store.TopologyIndicator(row.Int("TOPI")),
			Mask:        store.MaskIndicator(row.Int("MASK")),
		})
	}
	st.SetTopology(name, store.VectorTopology{Pointers: pointers})
}
