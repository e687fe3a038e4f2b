// Package passes implements the ordered tree transformations between parsing
// and printing: at-rule shaping, validation, conditional and constant
// elimination, mixin expansion, structural optimizations, orientation
// flipping and class renaming.
package passes

import (
	"go.uber.org/zap"

	"gssc/config"
	"gssc/gss"
	"gssc/rename"
)

// Pass is a single tree transformation. Run mutates the tree in place and
// reports recoverable problems through the error manager.
type Pass interface {
	Name() string
	Run(root *gss.Root, em *gss.ErrorManager)
}

// Runner executes a fixed pass sequence for one compile job. Order matters:
// conditionals are resolved before constants so eliminated branches cannot
// define anything, constants before mixins so mixin arguments are concrete,
// and renaming runs last over the already minimized tree.
type Runner struct {
	log    *zap.Logger
	passes []Pass
}

// NewRunner assembles the pass pipeline for a job. The debug output format
// runs normalization only, keeping the tree as close to the input as
// possible. subst may be nil when the job does not rename.
func NewRunner(log *zap.Logger, job *config.Job, subst rename.SubstitutionMap) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{log: log.Named("passes")}

	r.passes = append(r.passes,
		&CreateStandardAtRules{},
		&ValidateFunctions{AllowNonStandard: job.AllowNonStandard, Allowed: job.AllowedFunctions},
		&FixupFontDeclarations{},
	)
	if job.Debug() {
		return r
	}
	r.passes = append(r.passes,
		&EliminateConditionals{TrueConditions: job.TrueConditions},
		&ReplaceConstants{},
		&ReplaceMixins{},
		&EliminateEmptyRulesets{},
		&AbbreviatePositionalValues{},
	)
	if job.Flip {
		r.passes = append(r.passes, &FlipOrientation{})
	}
	if subst != nil {
		r.passes = append(r.passes, &RenameClasses{Map: subst, Excluded: job.ExcludedClasses})
	}
	return r
}

// Run executes the pipeline in order. Every pass sees the tree left by its
// predecessor; there is no early exit on diagnostics, partial output is still
// useful to the user.
func (r *Runner) Run(root *gss.Root, em *gss.ErrorManager) {
	for _, p := range r.passes {
		r.log.Debug("running pass", zap.String("pass", p.Name()))
		p.Run(root, em)
	}
}
