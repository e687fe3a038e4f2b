// Package rename implements the CSS class renaming strategies: identity,
// a debug-friendly suffixing map, minimal-length assignment, delimiter
// splitting and a recording decorator. Maps compose by decoration; the
// registry in New builds the configured stack.
package rename

// SubstitutionMap renames an identifier (or one part of one). Get is
// deterministic for the lifetime of the map: repeated queries for the same
// input always return the same output. Implementations are not safe for
// concurrent use; one compile job owns one map.
type SubstitutionMap interface {
	Get(name string) string
}

// Identity returns every input unchanged.
type Identity struct{}

func (Identity) Get(name string) string { return name }

// Simple appends a fixed suffix to every input, producing renamed output
// that is still human-readable. Used by the debug renaming strategy.
type Simple struct {
	Suffix string
}

func (s Simple) Get(name string) string {
	suffix := s.Suffix
	if suffix == "" {
		suffix = "_"
	}
	return name + suffix
}

// Minimal assigns each newly seen input the shortest identifier not yet
// used, in first-seen order: single letters before two-character names.
// Assignments are memoized for the lifetime of the map; this is a
// correctness requirement, not an optimization.
type Minimal struct {
	gen      *nameGenerator
	used     map[string]bool
	assigned map[string]string
}

// NewMinimal creates a minimal-length map. Values in used are never
// generated, so externally seeded outputs cannot collide with fresh
// assignments.
func NewMinimal(used map[string]bool) *Minimal {
	u := make(map[string]bool, len(used))
	for k, v := range used {
		if v {
			u[k] = true
		}
	}
	return &Minimal{gen: &nameGenerator{}, used: u, assigned: make(map[string]string)}
}

func (m *Minimal) Get(name string) string {
	if v, ok := m.assigned[name]; ok {
		return v
	}
	v := m.gen.next()
	for m.used[v] {
		v = m.gen.next()
	}
	m.assigned[name] = v
	return v
}

// nameGenerator yields "a".."z", then "a0".."a9","aa".."az", "b0"… and so on
// with longer names once two-character ones run out.
type nameGenerator struct {
	counter int
}

const (
	startChars = "abcdefghijklmnopqrstuvwxyz"
	tailChars  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func (g *nameGenerator) next() string {
	n := g.counter
	g.counter++
	if n < len(startChars) {
		return string(startChars[n])
	}
	n -= len(startChars)
	// positional encoding: first char from startChars, the rest from
	// tailChars, shortest names first
	width := 1
	block := len(startChars)
	for {
		block *= len(tailChars)
		if n < block {
			break
		}
		n -= block
		width++
	}
	tail := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		tail[i] = tailChars[n%len(tailChars)]
		n /= len(tailChars)
	}
	return string(startChars[n]) + string(tail)
}
