package passes_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"gssc/config"
	"gssc/gss"
	"gssc/passes"
	"gssc/printer"
	"gssc/rename"
)

func parse(t *testing.T, src string) (*gss.Root, *gss.ErrorManager) {
	t.Helper()
	em := gss.NewErrorManager(false)
	p := gss.NewParser(zap.NewNop(), false)
	root, err := p.Parse([]gss.Source{{Name: "test.gss", Content: src}}, em)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return root, em
}

func compact(root *gss.Root) string {
	return printer.Print(root, printer.Options{Compact: true})
}

func runJob(t *testing.T, src string, cfg func(*config.Config)) (string, *gss.ErrorManager) {
	t.Helper()
	c := config.Default()
	if cfg != nil {
		cfg(c)
	}
	job, err := c.Job()
	if err != nil {
		t.Fatalf("bad job: %v", err)
	}
	root, em := parse(t, src)
	var subst rename.SubstitutionMap
	if job.RenamingStrategy != rename.StrategyIdentity {
		subst, _, err = rename.New(job.RenamingStrategy, rename.Options{Delimiter: job.RenamingDelimiter, Seed: job.RenamingSeed})
		if err != nil {
			t.Fatalf("bad strategy: %v", err)
		}
	}
	passes.NewRunner(zap.NewNop(), job, subst).Run(root, em)
	return compact(root), em
}

func TestCreateStandardAtRules(t *testing.T) {
	root, em := parse(t, "@media print { a { b: c } }\n@import \"base.css\";\n@charset \"UTF-8\";\n@keyframes spin { }")
	(&passes.CreateStandardAtRules{}).Run(root, em)
	if em.HasErrors() {
		t.Fatalf("unexpected errors: %v", em.Drain(0))
	}
	if _, ok := root.Body[0].(*gss.MediaRule); !ok {
		t.Errorf("expected *MediaRule, got %T", root.Body[0])
	}
	if imp, ok := root.Body[1].(*gss.ImportRule); !ok || imp.Target != "\"base.css\"" {
		t.Errorf("expected *ImportRule, got %#v", root.Body[1])
	}
	if _, ok := root.Body[2].(*gss.CharsetRule); !ok {
		t.Errorf("expected *CharsetRule, got %T", root.Body[2])
	}
	// unrecognized at-rules stay generic
	if _, ok := root.Body[3].(*gss.UnknownAtRule); !ok {
		t.Errorf("expected @keyframes to stay generic, got %T", root.Body[3])
	}
}

func TestValidateFunctionsDropsDeclaration(t *testing.T) {
	root, em := parse(t, "a { color: rgb(1,2,3); width: bogus(1); height: 2px }")
	(&passes.ValidateFunctions{}).Run(root, em)
	if len(em.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %v", em.Drain(0))
	}
	out := compact(root)
	if strings.Contains(out, "bogus") {
		t.Errorf("offending declaration must be dropped: %s", out)
	}
	if !strings.Contains(out, "rgb") || !strings.Contains(out, "height") {
		t.Errorf("sibling declarations must survive: %s", out)
	}
}

func TestValidateFunctionsAllowList(t *testing.T) {
	root, em := parse(t, "a { width: custom(1) }")
	(&passes.ValidateFunctions{Allowed: map[string]bool{"custom": true}}).Run(root, em)
	if em.HasErrors() {
		t.Fatalf("allow-listed function reported: %v", em.Drain(0))
	}

	root, em = parse(t, "a { width: custom(1) }")
	(&passes.ValidateFunctions{AllowNonStandard: true}).Run(root, em)
	if em.HasErrors() {
		t.Fatalf("allow-non-standard must accept anything: %v", em.Drain(0))
	}
}

func TestFixupFontDeclarations(t *testing.T) {
	root, em := parse(t, "a { font: bold 12px / 14px Arial }")
	(&passes.FixupFontDeclarations{}).Run(root, em)
	out := compact(root)
	if !strings.Contains(out, "12px/14px") {
		t.Errorf("expected slash-joined size pair, got %s", out)
	}
}

func TestEliminateConditionals(t *testing.T) {
	src := "@if COND { a { x: y } } @else { b { x: y } }"

	out, _ := runJob(t, src, func(c *config.Config) { c.Conditions = []string{"COND"} })
	if !strings.Contains(out, "a{") || strings.Contains(out, "b{") {
		t.Errorf("expected the true branch only, got %q", out)
	}

	out, _ = runJob(t, src, nil)
	if strings.Contains(out, "a{") || !strings.Contains(out, "b{") {
		t.Errorf("expected the else branch, got %q", out)
	}

	// no else, no match: the whole chain disappears
	out, _ = runJob(t, "@if COND { a { x: y } }", nil)
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestEliminateConditionalsNegation(t *testing.T) {
	out, _ := runJob(t, "@if !COND { a { x: y } }", nil)
	if !strings.Contains(out, "a{") {
		t.Errorf("negated false condition must hold, got %q", out)
	}
}

func TestReplaceConstants(t *testing.T) {
	src := "@def BG_COLOR #fff;\n@def PADDED_BG BG_COLOR padded;\na { background: PADDED_BG }"
	out, em := runJob(t, src, nil)
	if em.HasErrors() {
		t.Fatalf("unexpected errors: %v", em.Drain(0))
	}
	if out != "a{background:#fff padded}" {
		t.Errorf("transitive constant substitution failed: %q", out)
	}
}

func TestReplaceConstantsUndefinedWarns(t *testing.T) {
	_, em := runJob(t, "a { color: NO_SUCH_CONST }", nil)
	if len(em.Warnings()) == 0 {
		t.Error("expected a warning for an undefined constant")
	}
}

func TestReplaceMixins(t *testing.T) {
	src := "@defmixin size(W, H) { width: W; height: H }\na { @mixin size(10px, 20px); color: red }"
	out, em := runJob(t, src, nil)
	if em.HasErrors() {
		t.Fatalf("unexpected errors: %v", em.Drain(0))
	}
	if out != "a{width:10px;height:20px;color:red}" {
		t.Errorf("mixin expansion failed: %q", out)
	}
}

func TestReplaceMixinsUnresolved(t *testing.T) {
	out, em := runJob(t, "a { @mixin nope(1); color: red }", nil)
	if len(em.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %v", em.Drain(0))
	}
	if out != "a{color:red}" {
		t.Errorf("siblings of a failed mixin call must survive: %q", out)
	}
}

func TestReplaceMixinsArity(t *testing.T) {
	_, em := runJob(t, "@defmixin size(W, H) { width: W }\na { @mixin size(1px); }", nil)
	if len(em.Errors()) != 1 {
		t.Fatalf("expected an arity error, got %v", em.Drain(0))
	}
}

func TestEliminateEmptyRulesets(t *testing.T) {
	out, _ := runJob(t, "a { }\nb { x: y }\n@media print { c { } }", nil)
	if out != "b{x:y}" {
		t.Errorf("empty rulesets and emptied media rules must disappear: %q", out)
	}
}

func TestAbbreviatePositionalValues(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a { margin: 1px 1px 1px 1px }", "a{margin:1px}"},
		{"a { margin: 1px 2px 1px 2px }", "a{margin:1px 2px}"},
		{"a { margin: 1px 2px 3px 2px }", "a{margin:1px 2px 3px}"},
		{"a { margin: 1px 2px 3px 4px }", "a{margin:1px 2px 3px 4px}"},
		{"a { padding: 5px 5px }", "a{padding:5px}"},
		{"a { color: red }", "a{color:red}"},
	}
	for _, tc := range cases {
		out, _ := runJob(t, tc.in, nil)
		if out != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, out, tc.want)
		}
	}
}

func TestFlipOrientation(t *testing.T) {
	rtl := func(c *config.Config) { c.Output.Orientation = "rtl" }

	cases := []struct{ in, want string }{
		{"a { margin-left: 1px }", "a{margin-right:1px}"},
		{"a { padding-right: 1px }", "a{padding-left:1px}"},
		{"a { float: left }", "a{float:right}"},
		{"a { text-align: right }", "a{text-align:left}"},
		{"a { margin: 1px 2px 3px 4px }", "a{margin:1px 4px 3px 2px}"},
		{"a { margin-top: 1px }", "a{margin-top:1px}"},
	}
	for _, tc := range cases {
		out, _ := runJob(t, tc.in, rtl)
		if out != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, out, tc.want)
		}
	}
}

func TestRenameClasses(t *testing.T) {
	minimal := func(c *config.Config) { c.Renaming.Strategy = rename.StrategyMinimal }
	out, _ := runJob(t, ".dialog { x: y }\n.settings { x: y }\n.dialog-button { x: y }", minimal)
	if out != ".a{x:y}.b{x:y}.a-c{x:y}" {
		t.Errorf("unexpected renaming: %q", out)
	}
}

func TestRenameClassesExclusion(t *testing.T) {
	out, _ := runJob(t, ".keep { x: y }\n.other { x: y }", func(c *config.Config) {
		c.Renaming.Strategy = rename.StrategyMinimal
		c.Renaming.ExcludedClasses = []string{"keep"}
	})
	if out != ".keep{x:y}.a{x:y}" {
		t.Errorf("excluded class must keep its name and consume no short name: %q", out)
	}
}

func TestDebugFormatSkipsOptimization(t *testing.T) {
	src := "@def C red;\na { }\n.dialog { color: C }"
	c := config.Default()
	c.Output.Format = "debug"
	c.Renaming.Strategy = rename.StrategyMinimal
	job, err := c.Job()
	if err != nil {
		t.Fatalf("bad job: %v", err)
	}
	root, em := parse(t, src)
	passes.NewRunner(zap.NewNop(), job, nil).Run(root, em)
	out := printer.Print(root, printer.Options{})
	if !strings.Contains(out, "@def C red;") {
		t.Errorf("debug output must keep definitions: %q", out)
	}
	if !strings.Contains(out, ".dialog") {
		t.Errorf("debug output must not rename: %q", out)
	}
	if !strings.Contains(out, "a {") {
		t.Errorf("debug output must keep empty rulesets: %q", out)
	}
}

func TestPoisonedInputCompilesToNothing(t *testing.T) {
	out, em := runJob(t, "a{([b)]} c{}", nil)
	if len(em.Errors()) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", em.Drain(0))
	}
	if out != "" {
		t.Errorf("poisoned input must compile to empty output, got %q", out)
	}
}
