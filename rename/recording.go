package rename

// Recording decorates a SubstitutionMap with an observation log of every
// queried input and its substituted value. Placed under a Splitting wrapper
// it records parts, not whole class names, so the log's key set equals
// exactly the set of distinct parts ever queried.
type Recording struct {
	delegate  SubstitutionMap
	mappings  map[string]string
	order     []string
	predicate func(string) bool
}

// RecordingOption configures a Recording map.
type RecordingOption func(*Recording)

// WithSeed pre-loads mappings, typically from a previous compile run. Seeded
// entries are authoritative: they are returned without consulting the
// delegate and are never reassigned.
func WithSeed(seed map[string]string) RecordingOption {
	return func(r *Recording) {
		for k, v := range seed {
			if _, ok := r.mappings[k]; !ok {
				r.order = append(r.order, k)
			}
			r.mappings[k] = v
		}
	}
}

// WithPredicate filters which queries are worth persisting in the log. The
// substitution result is returned regardless of whether it is recorded.
func WithPredicate(p func(name string) bool) RecordingOption {
	return func(r *Recording) { r.predicate = p }
}

// NewRecording wraps delegate with an observation log.
func NewRecording(delegate SubstitutionMap, opts ...RecordingOption) *Recording {
	r := &Recording{delegate: delegate, mappings: make(map[string]string)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recording) Get(name string) string {
	if v, ok := r.mappings[name]; ok {
		return v
	}
	v := r.delegate.Get(name)
	if r.predicate == nil || r.predicate(name) {
		r.mappings[name] = v
		r.order = append(r.order, name)
	}
	return v
}

// Mappings returns a copy of the observation log.
func (r *Recording) Mappings() map[string]string {
	out := make(map[string]string, len(r.mappings))
	for k, v := range r.mappings {
		out[k] = v
	}
	return out
}

// Keys returns the recorded inputs in first-seen order (seed first).
func (r *Recording) Keys() []string {
	return append([]string(nil), r.order...)
}
