package enc57

import (
	"github.com/vesseltrace/enc57/internal/catalog"
	"github.com/vesseltrace/enc57/internal/tts"
)

// Option configures a Load call, following the functional-options shape so
// defaults live in one place and new knobs don't need a matching field
// threaded through every call site.
type Option func(*options)

type options struct {
	cyclePolicy       tts.CyclePolicy
	continuityPolicy  tts.ContinuityPolicy
	catalogue         catalog.Catalogue
	objectClassFilter []int
	danglingRef       DanglingReferencePolicy
}

func defaultOptions() options {
	return options{
		cyclePolicy:      tts.CycleAllowOncePolicy(),
		continuityPolicy: tts.ContinuityError,
		catalogue:        catalog.Default(),
		danglingRef:      DanglingReferenceDiagnostic,
	}
}

// WithCyclePolicy overrides how many times a geometry walk may revisit the
// same edge before failing. Default: AllowOnce, since a single revisit is
// the normal shape of a figure-eight boundary, not a malformed one.
func WithCyclePolicy(p tts.CyclePolicy) Option {
	return func(o *options) { o.cyclePolicy = p }
}

// WithContinuityPolicy overrides how a broken line/ring chain is handled.
// Default: fail the feature.
func WithContinuityPolicy(p tts.ContinuityPolicy) Option {
	return func(o *options) { o.continuityPolicy = p }
}

// WithCatalogue overrides the object-class/attribute catalogue used to
// resolve feature codes to names. Default: the built-in catalogue.
func WithCatalogue(c catalog.Catalogue) Option {
	return func(o *options) { o.catalogue = c }
}

// WithObjectClassFilter restricts Load to features whose FRID object-class
// code is one of codes; every other feature is skipped entirely — it's
// absent from Chart.Features, Chart.Feature, and the spatial index, not
// merely unresolved. Default: no filter, every feature is kept.
func WithObjectClassFilter(codes ...int) Option {
	return func(o *options) { o.objectClassFilter = codes }
}

// DanglingReferencePolicy controls how Load reacts when a feature's
// geometry fails to resolve (a dangling VRPT/FSPT reference, or a
// cycle/continuity policy violation).
type DanglingReferencePolicy int

const (
	// DanglingReferenceDiagnostic records the failure as a Diagnostic and
	// gives the feature a GeometryError geometry carrying the failure, left
	// out of the spatial index; Load still succeeds. Default.
	DanglingReferenceDiagnostic DanglingReferencePolicy = iota
	// DanglingReferenceFail aborts Load with an error on the first feature
	// whose geometry fails to resolve.
	DanglingReferenceFail
)

// WithDanglingReferencePolicy overrides how Load reacts to a feature whose
// geometry fails to resolve. Default: DanglingReferenceDiagnostic.
func WithDanglingReferencePolicy(p DanglingReferencePolicy) Option {
	return func(o *options) { o.danglingRef = p }
}
