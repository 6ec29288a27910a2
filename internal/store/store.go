package store

import "sort"

// Store is the decoded chart's entity-component table. It holds no
// behavior beyond bookkeeping — ingestion systems (internal/ingest) and the
// topology walker (internal/tts) populate and read it; Store itself never
// validates cross-references (that's a DanglingReference concern for the
// systems that dereference a Name and don't find it).
type Store struct {
	vectorMeta  map[Name]VectorMeta
	positions   map[Name]ExactPositions
	vectorTopo  map[Name]VectorTopology

	featureMeta      map[Name]FeatureMeta
	foid             map[Name]FOID
	featurePointers  map[Name]FeaturePointers
	featureRelations map[Name]FeatureRelations
	attributes       map[Name]Attributes

	dataset DatasetMeta
}

func New() *Store {
	return &Store{
		vectorMeta:       make(map[Name]VectorMeta),
		positions:        make(map[Name]ExactPositions),
		vectorTopo:       make(map[Name]VectorTopology),
		featureMeta:      make(map[Name]FeatureMeta),
		foid:             make(map[Name]FOID),
		featurePointers:  make(map[Name]FeaturePointers),
		featureRelations: make(map[Name]FeatureRelations),
		attributes:       make(map[Name]Attributes),
		dataset:          DefaultDatasetMeta(),
	}
}

// CreateVector registers a vector record's identity. Called once per vector
// record by NameDecodeSystem, before GeometrySystem or TopologySystem
// attach their components.
func (s *Store) CreateVector(meta VectorMeta) { s.vectorMeta[meta.Name] = meta }

func (s *Store) Vector(n Name) (VectorMeta, bool) {
	v, ok := s.vectorMeta[n]
	return v, ok
}

func (s *Store) SetPositions(n Name, p ExactPositions) { s.positions[n] = p }

func (s *Store) Positions(n Name) (ExactPositions, bool) {
	p, ok := s.positions[n]
	return p, ok
}

func (s *Store) SetTopology(n Name, t VectorTopology) { s.vectorTopo[n] = t }

func (s *Store) Topology(n Name) (VectorTopology, bool) {
	t, ok := s.vectorTopo[n]
	return t, ok
}

// CreateFeature registers a feature record's identity. Called once per
// feature record by NameDecodeSystem.
func (s *Store) CreateFeature(meta FeatureMeta) { s.featureMeta[meta.Name] = meta }

func (s *Store) Feature(n Name) (FeatureMeta, bool) {
	f, ok := s.featureMeta[n]
	return f, ok
}

func (s *Store) SetFOID(n Name, f FOID) { s.foid[n] = f }

func (s *Store) FOIDOf(n Name) (FOID, bool) {
	f, ok := s.foid[n]
	return f, ok
}

func (s *Store) SetFeaturePointers(n Name, p FeaturePointers) { s.featurePointers[n] = p }

func (s *Store) FeaturePointersOf(n Name) (FeaturePointers, bool) {
	p, ok := s.featurePointers[n]
	return p, ok
}

func (s *Store) SetFeatureRelations(n Name, r FeatureRelations) { s.featureRelations[n] = r }

func (s *Store) FeatureRelationsOf(n Name) (FeatureRelations, bool) {
	r, ok := s.featureRelations[n]
	return r, ok
}

func (s *Store) SetAttributes(n Name, a Attributes) { s.attributes[n] = a }

func (s *Store) AttributesOf(n Name) (Attributes, bool) {
	a, ok := s.attributes[n]
	return a, ok
}

// IterFeatures returns every feature Name accepted by filter, in ascending
// RCID order so callers get a deterministic iteration order regardless of
// Go's randomized map iteration. filter may be nil to select every feature.
func (s *Store) IterFeatures(filter func(FeatureMeta) bool) []Name {
	out := make([]Name, 0, len(s.featureMeta))
	for n, meta := range s.featureMeta {
		if filter == nil || filter(meta) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RCID < out[j].RCID })
	return out
}

// IterVectors returns every vector Name of the given kind, in ascending RCID
// order.
func (s *Store) IterVectors(kind VectorKind) []Name {
	out := make([]Name, 0)
	for n, meta := range s.vectorMeta {
		if meta.Kind == kind {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RCID < out[j].RCID })
	return out
}
