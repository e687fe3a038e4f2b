// Package compiler wires the full pipeline: parse, transform, render. One
// Compiler value serves any number of sequential compile jobs.
package compiler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gssc/config"
	"gssc/gss"
	"gssc/passes"
	"gssc/printer"
	"gssc/rename"
)

// Result is everything one compile job produced. Diagnostics are part of the
// result rather than an error: compilation is best-effort and partial output
// plus precise diagnostics beats an empty failure.
type Result struct {
	CSS       string
	RenameMap map[string]string
	SourceMap []printer.Mapping
	Errors    []gss.Error
	Warnings  []gss.Error
}

// HasErrors reports whether the job produced at least one error diagnostic.
// Output may still be present; callers decide whether to use it.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// InternalError marks a failure of the compiler itself rather than a problem
// with the input.
type InternalError struct {
	Stage string
	Err   error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error in %s: %v", e.Stage, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// Compiler runs compile jobs. Safe to reuse sequentially; not safe for
// concurrent use because the parser keeps per-job state.
type Compiler struct {
	log            *zap.Logger
	parser         *gss.Parser
	parserFailFast bool
}

// New creates a compiler. A nil logger disables logging.
func New(log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{log: log.Named("compiler")}
}

// Compile runs one job over the given sources. The returned error is non-nil
// only for configuration problems, fail-fast parse termination and internal
// failures; ordinary syntax and semantic problems are collected in the
// result.
func (c *Compiler) Compile(job *config.Job, sources []gss.Source) (res *Result, err error) {
	id := uuid.NewString()
	log := c.log.With(zap.String("job", id))
	log.Debug("compile started", zap.Int("sources", len(sources)))

	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Stage: "compile", Err: fmt.Errorf("%v", r)}
			log.Error("compile panicked", zap.Error(err))
		}
	}()

	em := gss.NewErrorManager(job.WarningsAsErrors)
	res = &Result{}

	if c.parser == nil || c.parserFailFast != job.FailFast {
		c.parser = gss.NewParser(c.log, job.FailFast)
		c.parserFailFast = job.FailFast
	}
	root, perr := c.parser.Parse(sources, em)
	if perr != nil {
		var pf *gss.ParseFailure
		if errors.As(perr, &pf) {
			em.Report(pf.Diag)
			res.Errors = em.Errors()
			res.Warnings = em.Warnings()
			return res, perr
		}
		return res, &InternalError{Stage: "parse", Err: perr}
	}

	if ce := log.Check(zap.DebugLevel, "parsed tree"); ce != nil {
		ce.Write(zap.String("ast", gss.Dump(root)))
	}

	subst, rec, rerr := c.substitution(job)
	if rerr != nil {
		return res, rerr
	}

	passes.NewRunner(c.log, job, subst).Run(root, em)

	var sm *printer.RecordingSourceMap
	opts := printer.Options{
		Compact:   job.Format == config.FormatCompressed,
		Copyright: job.Copyright,
	}
	if job.SourceMap {
		sm = &printer.RecordingSourceMap{}
		opts.SourceMap = sm
	}
	res.CSS = printer.Print(root, opts)

	if rec != nil {
		res.RenameMap = rec.Mappings()
	}
	if sm != nil {
		res.SourceMap = sm.Mappings()
	}
	res.Errors = em.Errors()
	res.Warnings = em.Warnings()

	log.Debug("compile finished",
		zap.Int("bytes", len(res.CSS)),
		zap.Int("errors", len(res.Errors)),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// substitution builds the renaming stack for a job. The debug output format
// never renames regardless of the configured strategy.
func (c *Compiler) substitution(job *config.Job) (rename.SubstitutionMap, *rename.Recording, error) {
	if job.Debug() || job.RenamingStrategy == rename.StrategyIdentity {
		return nil, nil, nil
	}
	return rename.New(job.RenamingStrategy, rename.Options{
		Delimiter: job.RenamingDelimiter,
		Seed:      job.RenamingSeed,
	})
}
