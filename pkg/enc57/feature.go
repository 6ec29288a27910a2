package enc57

import (
	"strconv"

	"github.com/vesseltrace/enc57/internal/store"
	"github.com/vesseltrace/enc57/internal/tts"
)

// Feature is a chart feature resolved for consumption: its identity, its
// object class resolved against the catalogue, its attributes keyed by
// acronym where the catalogue recognizes the code, and its geometry.
type Feature struct {
	Name            store.Name
	ObjectClassCode int
	ObjectClass     string // acronym, e.g. "LIGHTS"; falls back to the numeric code as a string
	ObjectClassName string // descriptive name; empty on a catalogue miss
	Primitive       store.Primitive
	Attributes      map[string]string // keyed by attribute acronym, or numeric code as a string on a miss
	Relations       []store.FeatureRelation
	Geometry        tts.Geometry
}

// Feature looks up one feature by Name, resolving its object class and
// attributes against the chart's catalogue. A feature excluded by
// WithObjectClassFilter is reported as not found, the same as an absent one.
func (c *Chart) Feature(name store.Name) (Feature, bool) {
	meta, ok := c.store.Feature(name)
	if !ok || (c.featureFilter != nil && !c.featureFilter(meta)) {
		return Feature{}, false
	}
	return c.buildFeature(name, meta), true
}

// Features returns every decoded feature, in ascending RCID order.
func (c *Chart) Features() []Feature {
	names := c.store.IterFeatures(c.featureFilter)
	out := make([]Feature, 0, len(names))
	for _, n := range names {
		meta, _ := c.store.Feature(n)
		out = append(out, c.buildFeature(n, meta))
	}
	return out
}

// FeaturesInBounds returns every feature whose resolved geometry's bounding
// box intersects the given viewport, via the chart's R-tree index rather
// than a linear scan.
func (c *Chart) FeaturesInBounds(minX, minY, maxX, maxY float64) []Feature {
	names := c.index.Query(minX, minY, maxX, maxY)
	out := make([]Feature, 0, len(names))
	for _, n := range names {
		meta, ok := c.store.Feature(n)
		if !ok {
			continue
		}
		out = append(out, c.buildFeature(n, meta))
	}
	return out
}

func (c *Chart) buildFeature(name store.Name, meta store.FeatureMeta) Feature {
	f := Feature{
		Name:            name,
		ObjectClassCode: meta.ObjectClassCode,
		ObjectClass:     strconv.Itoa(meta.ObjectClassCode),
		Primitive:       meta.Primitive,
		Geometry:        c.geometry[name],
	}
	if acronym, objName, ok := c.catalogue.ObjectClass(meta.ObjectClassCode); ok {
		f.ObjectClass = acronym
		f.ObjectClassName = objName
	}

	if rel, ok := c.store.FeatureRelationsOf(name); ok {
		f.Relations = rel.Relations
	}

	if attrs, ok := c.store.AttributesOf(name); ok {
		f.Attributes = make(map[string]string, len(attrs.Values))
		for code, v := range attrs.Values {
			key := strconv.Itoa(code)
			if acronym, _, _, ok := c.catalogue.Attribute(code); ok {
				key = acronym
			}
			f.Attributes[key] = v.Str
		}
	}

	return f
}
