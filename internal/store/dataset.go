package store

// DatasetMeta is the chart-wide metadata decoded from the file's DSID and
// DSPM records, collapsed into one struct since both describe the same
// singleton dataset-level record: identity (name, edition) and the
// coordinate scale factors every vector's SG2D/SG3D coordinates are
// expressed against.
type DatasetMeta struct {
	DatasetName       string
	Edition           int
	UpdateNumber      int
	ProducingAgency   int
	IssueDate         string // DSID's ISDT, kept in its on-disk YYYYMMDD form
	CompilationScale  int
	HorizontalDatum   string
	VerticalDatum     string
	SoundingDatum     string
	CoordinateUnits   int // DUNI: 1 = lat/lon, 2 = easting/northing, 3 = units on chart/map
	COMF              int64
	SOMF              int64
}

// DefaultDatasetMeta returns COMF/SOMF of 1 (no scaling) for use if a chart
// is ever queried before its DSPM record has been seen.
func DefaultDatasetMeta() DatasetMeta {
	return DatasetMeta{COMF: 1, SOMF: 1, CoordinateUnits: 1}
}

func (s *Store) SetDatasetMeta(m DatasetMeta) { s.dataset = m }

func (s *Store) DatasetMeta() DatasetMeta { return s.dataset }
