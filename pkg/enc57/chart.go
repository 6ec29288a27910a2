package enc57

import (
	"github.com/vesseltrace/enc57/internal/catalog"
	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/spatialindex"
	"github.com/vesseltrace/enc57/internal/store"
	"github.com/vesseltrace/enc57/internal/tts"
)

// Chart is a fully decoded and geometry-resolved S-57 cell.
type Chart struct {
	store         *store.Store
	catalogue     catalog.Catalogue
	index         *spatialindex.FeatureIndex
	geometry      map[store.Name]tts.Geometry
	diagnostics   []encerr.Diagnostic
	featureFilter func(store.FeatureMeta) bool // nil if WithObjectClassFilter wasn't used
}

func (c *Chart) DatasetName() string      { return c.store.DatasetMeta().DatasetName }
func (c *Chart) Edition() int             { return c.store.DatasetMeta().Edition }
func (c *Chart) UpdateNumber() int        { return c.store.DatasetMeta().UpdateNumber }
func (c *Chart) ProducingAgency() int     { return c.store.DatasetMeta().ProducingAgency }
func (c *Chart) HorizontalDatum() string  { return c.store.DatasetMeta().HorizontalDatum }
func (c *Chart) VerticalDatum() string    { return c.store.DatasetMeta().VerticalDatum }
func (c *Chart) SoundingDatum() string    { return c.store.DatasetMeta().SoundingDatum }
func (c *Chart) CompilationScale() int    { return c.store.DatasetMeta().CompilationScale }
func (c *Chart) CoordinateUnits() int     { return c.store.DatasetMeta().CoordinateUnits }
func (c *Chart) IssueDate() string        { return c.store.DatasetMeta().IssueDate }

// Diagnostics returns every non-fatal condition noticed while loading the
// chart: unusual but accepted encodings, catalogue misses, features whose
// geometry failed to resolve. It never includes anything a fatal error
// would instead have reported via Load's own error return.
func (c *Chart) Diagnostics() []encerr.Diagnostic { return c.diagnostics }

// FeatureCount reports how many features were decoded (after any
// WithObjectClassFilter), regardless of whether their geometry resolved
// successfully.
func (c *Chart) FeatureCount() int { return len(c.store.IterFeatures(c.featureFilter)) }
