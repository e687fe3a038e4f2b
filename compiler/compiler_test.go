package compiler_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"gssc/compiler"
	"gssc/config"
	"gssc/gss"
	"gssc/rename"
)

func job(t *testing.T, cfg func(*config.Config)) *config.Job {
	t.Helper()
	c := config.Default()
	if cfg != nil {
		cfg(c)
	}
	j, err := c.Job()
	if err != nil {
		t.Fatalf("bad job: %v", err)
	}
	return j
}

func compile(t *testing.T, j *config.Job, src string) *compiler.Result {
	t.Helper()
	res, err := compiler.New(zap.NewNop()).Compile(j, []gss.Source{{Name: "in.gss", Content: src}})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return res
}

func TestCompileEndToEnd(t *testing.T) {
	src := strings.Join([]string{
		"@def BG #eee;",
		"@defmixin pad(P) { padding: P }",
		"@if MOBILE { .dialog { width: 100px } } @else { .dialog { width: 500px } }",
		".dialog-button { background: BG; @mixin pad(2px); margin: 1px 1px 1px 1px }",
		".unused { }",
	}, "\n")

	res := compile(t, job(t, func(c *config.Config) {
		c.Renaming.Strategy = rename.StrategyMinimal
	}), src)

	if res.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	want := ".a{width:500px}.a-b{background:#eee;padding:2px;margin:1px}"
	if res.CSS != want {
		t.Errorf("got %q, want %q", res.CSS, want)
	}
	if res.RenameMap["dialog"] != "a" || res.RenameMap["button"] != "b" {
		t.Errorf("unexpected rename map: %v", res.RenameMap)
	}
}

func TestCompileRenamingProperties(t *testing.T) {
	src := ".dialog{x:y} .settings{x:y} .button{x:y} .dialog-button{x:y} .goog-imageless-button-button-pos{x:y}"
	res := compile(t, job(t, func(c *config.Config) {
		c.Renaming.Strategy = rename.StrategyMinimal
	}), src)
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	want := ".a{x:y}.b{x:y}.c{x:y}.a-c{x:y}.d-e-c-c-f{x:y}"
	if res.CSS != want {
		t.Errorf("got %q, want %q", res.CSS, want)
	}
}

func TestCompileSeededRenaming(t *testing.T) {
	src := ".dialog{x:y} .settings{x:y}"
	res := compile(t, job(t, func(c *config.Config) {
		c.Renaming.Strategy = rename.StrategyMinimal
		c.Renaming.Seed = map[string]string{"dialog": "e"}
	}), src)
	if res.CSS != ".e{x:y}.a{x:y}" {
		t.Errorf("seeded mapping must hold and never collide: %q", res.CSS)
	}
	if res.RenameMap["dialog"] != "e" {
		t.Errorf("seed lost from rename map: %v", res.RenameMap)
	}
}

func TestCompileDiagnosticsInResult(t *testing.T) {
	res := compile(t, job(t, nil), "a { b: c,,; d: e }")
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error in result, got %+v", res.Errors)
	}
	if res.CSS != "a{d:e}" {
		t.Errorf("partial output expected alongside diagnostics: %q", res.CSS)
	}
	if !res.HasErrors() {
		t.Error("HasErrors must be true")
	}
}

func TestCompileFailFast(t *testing.T) {
	j := job(t, func(c *config.Config) { c.Output.FailFast = true })
	_, err := compiler.New(zap.NewNop()).Compile(j, []gss.Source{{Name: "in.gss", Content: "a { b: c,,; d: e }"}})
	if err == nil {
		t.Fatal("expected fail-fast termination")
	}
}

func TestCompileSourceMap(t *testing.T) {
	res := compile(t, job(t, func(c *config.Config) { c.Output.SourceMap = true }), "a { b: c }")
	if len(res.SourceMap) == 0 {
		t.Fatal("expected source map entries")
	}
	if res.SourceMap[0].Original.File != "in.gss" {
		t.Errorf("mapping lost source name: %+v", res.SourceMap[0])
	}
}

func TestCompileWarningsAsErrors(t *testing.T) {
	src := "a { color: UNDEFINED_C }"
	res := compile(t, job(t, nil), src)
	if res.HasErrors() || len(res.Warnings) == 0 {
		t.Fatalf("expected a plain warning: errors=%+v warnings=%+v", res.Errors, res.Warnings)
	}

	res = compile(t, job(t, func(c *config.Config) { c.Output.WarningsAsErrors = true }), src)
	if !res.HasErrors() {
		t.Fatal("warnings must escalate to errors")
	}
}

func TestCompilerReuse(t *testing.T) {
	c := compiler.New(zap.NewNop())
	j := job(t, nil)
	if _, err := c.Compile(j, []gss.Source{{Name: "bad.gss", Content: "a{([b)]}"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := c.Compile(j, []gss.Source{{Name: "good.gss", Content: "a { b: c }"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HasErrors() || res.CSS != "a{b:c}" {
		t.Errorf("reused compiler produced %q, errors %+v", res.CSS, res.Errors)
	}
}
