package rename

import "strings"

// DefaultDelimiter separates the renamable parts of a class name.
const DefaultDelimiter = "-"

// Splitting breaks a class name into parts on a delimiter, substitutes each
// part through the delegate and rejoins with the same delimiter. A part
// shared by several class names ("dialog-button" and "button") maps to the
// same output everywhere because the delegate memoizes per part. For names
// without the delimiter, splitting and rejoining is a no-op.
type Splitting struct {
	delegate  SubstitutionMap
	delimiter string
}

// NewSplitting wraps delegate with part-based substitution. An empty
// delimiter selects DefaultDelimiter.
func NewSplitting(delegate SubstitutionMap, delimiter string) *Splitting {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Splitting{delegate: delegate, delimiter: delimiter}
}

func (s *Splitting) Get(name string) string {
	if !strings.Contains(name, s.delimiter) {
		return s.delegate.Get(name)
	}
	parts := strings.Split(name, s.delimiter)
	for i, part := range parts {
		parts[i] = s.delegate.Get(part)
	}
	return strings.Join(parts, s.delimiter)
}
