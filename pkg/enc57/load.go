// Package enc57 is the public API: load an S-57 chart cell, inspect its
// dataset metadata, and query its features by name or by viewport.
//
// Load wires the ISO 8211 decoder, the ingestion systems, and the topology
// walker together over a memory-mapped cell file and build an R-tree spatial
// index of the resolved features, rather than constructing geometry inline as each record streams
// past.
package enc57

import (
	"github.com/vesseltrace/enc57/internal/encerr"
	"github.com/vesseltrace/enc57/internal/ingest"
	"github.com/vesseltrace/enc57/internal/ioacq"
	"github.com/vesseltrace/enc57/internal/iso8211"
	"github.com/vesseltrace/enc57/internal/spatialindex"
	"github.com/vesseltrace/enc57/internal/store"
	"github.com/vesseltrace/enc57/internal/tts"
)

// Load decodes the S-57 cell at path and resolves every feature's geometry.
// The file is memory-mapped for the duration of the call and unmapped
// before Load returns; nothing in the returned Chart aliases the mapping —
// every coordinate is copied out as it's decoded.
func Load(path string, opts ...Option) (*Chart, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var chart *Chart
	err := ioacq.WithFile(path, func(buf []byte) error {
		dec, err := iso8211.NewDecoder(buf)
		if err != nil {
			return err
		}

		st := store.New()
		diags, err := ingest.Run(dec, st)
		if err != nil {
			return err
		}

		walker := tts.NewEdgeWalker(st, o.cyclePolicy, o.continuityPolicy)
		index := spatialindex.New()
		geometry := make(map[store.Name]tts.Geometry)

		featureFilter := classFilter(o.objectClassFilter)
		for _, name := range st.IterFeatures(featureFilter) {
			meta, _ := st.Feature(name)
			if _, _, known := o.catalogue.ObjectClass(meta.ObjectClassCode); !known {
				diags = append(diags, encerr.Diagnostic{Kind: encerr.CatalogueMiss,
					Message: "object class code not in catalogue", Name: name.String()})
			}
			if attrs, ok := st.AttributesOf(name); ok {
				for code := range attrs.Values {
					if _, _, _, known := o.catalogue.Attribute(code); !known {
						diags = append(diags, encerr.Diagnostic{Kind: encerr.CatalogueMiss,
							Message: "attribute code not in catalogue", Name: name.String()})
					}
				}
			}
			geom, gdiags, gerr := walker.Resolve(name)
			diags = append(diags, gdiags...)
			if gerr != nil {
				if o.danglingRef == DanglingReferenceFail {
					return gerr
				}
				diags = append(diags, encerr.Diagnostic{
					Kind: encerr.TopologyError, Message: gerr.Error(), Name: name.String(),
				})
				geometry[name] = tts.ErrorGeometry(gerr)
				continue
			}
			geometry[name] = geom
			index.Insert(name, geom)
		}

		chart = &Chart{
			store:         st,
			catalogue:     o.catalogue,
			index:         index,
			geometry:      geometry,
			diagnostics:   diags,
			featureFilter: featureFilter,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chart, nil
}

// classFilter turns an object-class code list into the predicate
// store.IterFeatures expects, or nil (no filtering) if codes is empty.
func classFilter(codes []int) func(store.FeatureMeta) bool {
	if len(codes) == 0 {
		return nil
	}
	allowed := make(map[int]bool, len(codes))
	for _, c := range codes {
		allowed[c] = true
	}
	return func(m store.FeatureMeta) bool { return allowed[m.ObjectClassCode] }
}
