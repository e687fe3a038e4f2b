package rename

import "fmt"

// Strategy names accepted by New. The set is closed: strategies are
// resolved through this registry when the job configuration is built, not
// loaded dynamically.
const (
	StrategyIdentity = "identity"
	StrategyDebug    = "debug"
	StrategyMinimal  = "minimal"
)

// UnknownStrategyError is returned for a strategy name outside the registry.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown renaming strategy %q (want %s, %s or %s)",
		e.Name, StrategyIdentity, StrategyDebug, StrategyMinimal)
}

// Options configures the substitution map stack built by New.
type Options struct {
	// Delimiter splits class names into parts; empty means DefaultDelimiter.
	Delimiter string
	// Seed pre-loads part mappings from a previous run. Seeded outputs are
	// reserved so fresh minimal assignments cannot collide with them.
	Seed map[string]string
	// RecordPredicate filters which parts end up in the renaming table.
	RecordPredicate func(part string) bool
}

// Valid reports whether name is a registered strategy.
func Valid(name string) bool {
	switch name {
	case StrategyIdentity, StrategyDebug, StrategyMinimal:
		return true
	}
	return false
}

// New builds the substitution map for a strategy name. The returned
// *Recording is the observation log for the renaming table; it is nil for
// the identity strategy, which records nothing.
func New(strategy string, o Options) (SubstitutionMap, *Recording, error) {
	switch strategy {
	case StrategyIdentity, "":
		return Identity{}, nil, nil
	case StrategyDebug:
		rec := NewRecording(Simple{}, recordingOpts(o)...)
		return NewSplitting(rec, o.Delimiter), rec, nil
	case StrategyMinimal:
		used := make(map[string]bool, len(o.Seed))
		for _, v := range o.Seed {
			used[v] = true
		}
		rec := NewRecording(NewMinimal(used), recordingOpts(o)...)
		return NewSplitting(rec, o.Delimiter), rec, nil
	default:
		return nil, nil, &UnknownStrategyError{Name: strategy}
	}
}

func recordingOpts(o Options) []RecordingOption {
	var opts []RecordingOption
	if len(o.Seed) > 0 {
		opts = append(opts, WithSeed(o.Seed))
	}
	if o.RecordPredicate != nil {
		opts = append(opts, WithPredicate(o.RecordPredicate))
	}
	return opts
}
