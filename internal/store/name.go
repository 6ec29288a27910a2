// Package store holds the decoded chart as a small entity-component table:
// every vector and feature is identified by its Name, and each component
// (metadata, positions, topology, attributes, ...) lives in its own table
// keyed by that Name, populated independently by whichever ingestion system
// owns it, rather than one monolithic record struct per entity.
package store

import "fmt"

// Name is the stable identity of a vector or feature record: record name
// (RCNM) plus record identification number (RCID), per S-57 Part 3 §2.2.
// It is exactly the 5-byte NAME subfield (1-byte RCNM, 4-byte little-endian
// RCID) used throughout VRPT/FSPT pointers.
type Name struct {
	RCNM byte
	RCID uint32
}

// RCNM values identifying what kind of record a Name points at.
const (
	RCNMDataset        byte = 10
	RCNMIsolatedNode    byte = 110
	RCNMConnectedNode   byte = 120
	RCNMEdge            byte = 130
	RCNMFace            byte = 140
	RCNMFeature         byte = 100
)

func NewName(rcnm byte, rcid uint32) Name { return Name{RCNM: rcnm, RCID: rcid} }

func (n Name) String() string { return fmt.Sprintf("%d:%d", n.RCNM, n.RCID) }

// IsZero reports whether n is the zero Name, used to represent "no
// reference" (e.g. an edge missing a bounding node).
func (n Name) IsZero() bool { return n.RCNM == 0 && n.RCID == 0 }
