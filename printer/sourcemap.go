package printer

import "gssc/gss"

// Mapping ties one generated output position to the source location of the
// node that produced it.
type Mapping struct {
	Generated gss.Position
	Original  gss.Location
}

// SourceMapAccumulator receives one callback per printed node that carries a
// known source location. Calls arrive in generated-output order.
type SourceMapAccumulator interface {
	Add(generated gss.Position, original gss.Location)
}

// RecordingSourceMap accumulates mappings in generated order.
type RecordingSourceMap struct {
	mappings []Mapping
}

func (s *RecordingSourceMap) Add(generated gss.Position, original gss.Location) {
	s.mappings = append(s.mappings, Mapping{Generated: generated, Original: original})
}

// Mappings returns the accumulated mappings in generated-output order.
func (s *RecordingSourceMap) Mappings() []Mapping {
	return s.mappings
}

// NopSourceMap discards every mapping. Used when the job does not request a
// source map so the printers need no nil checks.
type NopSourceMap struct{}

func (NopSourceMap) Add(gss.Position, gss.Location) {}
