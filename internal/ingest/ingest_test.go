package ingest

import (
	"encoding/binary"
	"testing"

	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/store"
)

func row(tag string, fields map[string]iso8211.SubfieldValue) iso8211.RecordRow {
	return iso8211.RecordRow{Tag: tag, Fields: fields}
}

func intVal(v int64) iso8211.SubfieldValue  { return iso8211.SubfieldValue{Int: v} }
func strVal(v string) iso8211.SubfieldValue { return iso8211.SubfieldValue{Str: v} }
func nameVal(rcnm, rcid int64) iso8211.SubfieldValue {
	return iso8211.SubfieldValue{Parts: []int64{rcnm, rcid}}
}

// lnamVal builds FFPT's packed 8-byte LNAM bit field: 2-byte AGEN, 4-byte
// FIDN, 2-byte FIDS, all little-endian.
func lnamVal(agen uint16, fidn uint32, fids uint16) iso8211.SubfieldValue {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint16(raw[0:2], agen)
	binary.LittleEndian.PutUint32(raw[2:6], fidn)
	binary.LittleEndian.PutUint16(raw[6:8], fids)
	return iso8211.SubfieldValue{Raw: raw}
}

func TestNameDecodeSystemVector(t *testing.T) {
	st := store.New()
	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("VRID", map[string]iso8211.SubfieldValue{
			"RCNM": intVal(int64(store.RCNMEdge)),
			"RCID": intVal(7),
			"RVER": intVal(1),
		}),
	}}

	NameDecodeSystem(rec, st)

	name := store.NewName(store.RCNMEdge, 7)
	meta, ok := st.Vector(name)
	if !ok {
		t.Fatal("vector not created")
	}
	if meta.Kind != store.KindEdge {
		t.Errorf("Kind = %v, want KindEdge", meta.Kind)
	}
}

// TestNameDecodeSystemRejectsUnknownRCNM covers spec.md §7 item 5: a VRID
// whose RCNM isn't one of the four defined vector kinds is skipped, not
// ingested under a kind nothing else recognizes.
func TestNameDecodeSystemRejectsUnknownRCNM(t *testing.T) {
	st := store.New()
	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("VRID", map[string]iso8211.SubfieldValue{
			"RCNM": intVal(99),
			"RCID": intVal(7),
			"RVER": intVal(1),
		}),
	}}

	diags := NameDecodeSystem(rec, st)

	name := store.NewName(99, 7)
	if _, ok := st.Vector(name); ok {
		t.Fatal("vector should not have been created for an unrecognized RCNM")
	}
	if len(diags) != 1 || diags[0].Kind != encerr.UnknownRecordKind {
		t.Fatalf("diags = %+v, want one UnknownRecordKind diagnostic", diags)
	}
}

func TestGeometrySystemScalesByCOMF(t *testing.T) {
	st := store.New()
	st.SetDatasetMeta(store.DatasetMeta{COMF: 10, SOMF: 1})
	name := store.NewName(store.RCNMIsolatedNode, 1)

	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("SG2D", map[string]iso8211.SubfieldValue{
			"XCOO": intVal(50),
			"YCOO": intVal(30),
		}),
	}}

	GeometrySystem(rec, name, st)

	pos, ok := st.Positions(name)
	if !ok || len(pos.Points) != 1 {
		t.Fatalf("Positions = %+v, %v", pos, ok)
	}
	if pos.Points[0].X.Float64() != 5 || pos.Points[0].Y.Float64() != 3 {
		t.Errorf("got (%v,%v), want (5,3) after dividing by COMF=10", pos.Points[0].X.Float64(), pos.Points[0].Y.Float64())
	}
}

func TestTopologySystemDecodesVRPTNameComposite(t *testing.T) {
	st := store.New()
	edge := store.NewName(store.RCNMEdge, 5)

	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("VRPT", map[string]iso8211.SubfieldValue{
			"NAME": nameVal(int64(store.RCNMIsolatedNode), 1),
			"ORNT": intVal(int64(store.OrientationForward)),
			"USAG": intVal(int64(store.UsageExterior)),
			"TOPI": intVal(int64(store.TopiBeginningNode)),
			"MASK": intVal(int64(store.MaskVisible)),
		}),
	}}

	TopologySystem(rec, edge, st)

	topo, ok := st.Topology(edge)
	if !ok || len(topo.Pointers) != 1 {
		t.Fatalf("Topology = %+v, %v", topo, ok)
	}
	p, ok := topo.Node(store.TopiBeginningNode)
	if !ok || p.Target != store.NewName(store.RCNMIsolatedNode, 1) {
		t.Errorf("got %+v, want the beginning node pointer at IsolatedNode:1", p)
	}
}

func TestFoidAndFeatureBindSystems(t *testing.T) {
	st := store.New()
	feature := store.NewName(store.RCNMFeature, 20)

	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("FOID", map[string]iso8211.SubfieldValue{
			"AGEN": intVal(55),
			"FIDN": intVal(123),
			"FIDS": intVal(0),
		}),
		row("FSPT", map[string]iso8211.SubfieldValue{
			"NAME": nameVal(int64(store.RCNMEdge), 9),
			"ORNT": intVal(int64(store.OrientationForward)),
			"USAG": intVal(int64(store.UsageExterior)),
			"MASK": intVal(int64(store.MaskVisible)),
		}),
		row("ATTF", map[string]iso8211.SubfieldValue{
			"ATTL": intVal(71),
			"ATVL": strVal("Fairway Light"),
		}),
	}}

	FoidDecodeSystem(rec, feature, st)
	FeatureBindSystem(rec, feature, st)

	foid, ok := st.FOIDOf(feature)
	if !ok || foid.Agency != 55 || foid.FeatureIdentificationNumber != 123 {
		t.Fatalf("FOID = %+v, %v", foid, ok)
	}

	ptrs, ok := st.FeaturePointersOf(feature)
	if !ok || len(ptrs.Pointers) != 1 || ptrs.Pointers[0].Target != store.NewName(store.RCNMEdge, 9) {
		t.Fatalf("FeaturePointers = %+v, %v", ptrs, ok)
	}

	attrs, ok := st.AttributesOf(feature)
	if !ok || attrs.Values[71].Str != "Fairway Light" {
		t.Fatalf("Attributes = %+v, %v", attrs, ok)
	}
}

func TestFeatureBindSystemDecodesFFPT(t *testing.T) {
	st := store.New()
	feature := store.NewName(store.RCNMFeature, 21)

	rec := &iso8211.DataRecord{Rows: []iso8211.RecordRow{
		row("FFPT", map[string]iso8211.SubfieldValue{
			"LNAM": lnamVal(55, 456, 0),
			"RIND": intVal(int64(store.RelationMaster)),
			"COMT": strVal("part of the same buoy group"),
		}),
	}}

	FeatureBindSystem(rec, feature, st)

	rel, ok := st.FeatureRelationsOf(feature)
	if !ok || len(rel.Relations) != 1 {
		t.Fatalf("FeatureRelations = %+v, %v", rel, ok)
	}
	got := rel.Relations[0]
	if got.Related.Agency != 55 || got.Related.FeatureIdentificationNumber != 456 {
		t.Errorf("Related = %+v, want Agency=55 FIDN=456", got.Related)
	}
	if got.Relationship != store.RelationMaster {
		t.Errorf("Relationship = %v, want RelationMaster", got.Relationship)
	}
	if got.Comment != "part of the same buoy group" {
		t.Errorf("Comment = %q, want %q", got.Comment, "part of the same buoy group")
	}
}
