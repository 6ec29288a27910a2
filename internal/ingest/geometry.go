package ingest

import (
	"github.com/vesseltrace/enc57/internal/coord"
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

// GeometrySystem decodes a vector record's own coordinate geometry from its
// SG2D or SG3D field into exact Rational points, scaled by the dataset's
// COMF (coordinate) and SOMF (3rd-dimension) multiplication factors. This is
// the vector's raw position data only — an isolated or connected node's
// single point, or an edge's ordered interior vertices — not a feature's
// resolved geometry, which internal/tts assembles on demand by walking
// topology.
func GeometrySystem(rec *iso8211.DataRecord, name store.Name, st *store.Store) {
	meta := st.DatasetMeta()
	comf := meta.COMF
	if comf == 0 {
		comf = 1
	}
	somf := meta.SOMF
	if somf == 0 {
		somf = 1
	}

	var points []coord.Point

	for _, row := range rec.RowsWithTag("SG2D") {
		points = append(points, coord.Point{
			X: coord.FromScaled(row.Int("XCOO"), comf),
			Y: coord.FromScaled(row.Int("YCOO"), comf),
		})
	}
	for _, row := range rec.RowsWithTag("SG3D") {
		z := coord.FromScaled(row.Int("VE3D"), somf)
		points = append(points, coord.Point{
			X: coord.FromScaled(row.Int("XCOO"), comf),
			Y: coord.FromScaled(row.Int("YCOO"), comf),
			Z: &z,
		})
	}

	if len(points) == 0 {
		return
	}
	st.SetPositions(name, store.ExactPositions{Points: points})
}
