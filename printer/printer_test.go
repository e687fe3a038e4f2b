package printer_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"gssc/gss"
	"gssc/printer"
)

func parse(t *testing.T, src string) *gss.Root {
	t.Helper()
	em := gss.NewErrorManager(false)
	p := gss.NewParser(zap.NewNop(), false)
	root, err := p.Parse([]gss.Source{{Name: "test.gss", Content: src}}, em)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if em.HasErrors() {
		t.Fatalf("parse errors: %v", em.Drain(0))
	}
	return root
}

func TestCompactOutput(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a { b: c; }", "a{b:c}"},
		{"a { b: c; d: e; }", "a{b:c;d:e}"},
		{"a, b { c: d }", "a,b{c:d}"},
		{".x > .y + .z { a: b }", ".x>.y+.z{a:b}"},
		{"a { b: c !important }", "a{b:c!important}"},
		{"a { /* note */ b: c }", "a{b:c}"},
		{"/* top */ a { b: c }", "a{b:c}"},
		{"a { f: g(1, 2) }", "a{f:g(1,2)}"},
		{"a { m: 1px 2px }", "a{m:1px 2px}"},
		{"a { f: x, y z }", "a{f:x,y z}"},
	}
	for _, tc := range cases {
		got := printer.Print(parse(t, tc.in), printer.Options{Compact: true})
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPrettyOutput(t *testing.T) {
	got := printer.Print(parse(t, "a,b{c:d;e:f!important}"), printer.Options{})
	want := "a, b {\n  c: d;\n  e: f !important;\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyKeepsComments(t *testing.T) {
	got := printer.Print(parse(t, "a { /* keep me */ b: c }"), printer.Options{})
	if !strings.Contains(got, "/* keep me */") {
		t.Errorf("pretty output must keep comments: %q", got)
	}
}

func TestPrettyNestedMedia(t *testing.T) {
	root := parse(t, "@media print { a { b: c } }")
	// shape the generic at-rule by hand, the printer handles both forms
	ar := root.Body[0].(*gss.UnknownAtRule)
	root.Body[0] = &gss.MediaRule{Location: ar.Location, Query: ar.Prelude, Body: ar.Body}

	got := printer.Print(root, printer.Options{})
	want := "@media print {\n  a {\n    b: c;\n  }\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	compact := printer.Print(root, printer.Options{Compact: true})
	if compact != "@media print{a{b:c}}" {
		t.Errorf("compact media mismatch: %q", compact)
	}
}

func TestCopyrightPrepended(t *testing.T) {
	got := printer.Print(parse(t, "a{b:c}"), printer.Options{Compact: true, Copyright: "/* (c) example */"})
	if !strings.HasPrefix(got, "/* (c) example */\n") {
		t.Errorf("copyright must lead the output: %q", got)
	}
}

// Printing a parse of compact output must reproduce it exactly.
func TestCompactRoundTrip(t *testing.T) {
	inputs := []string{
		"a { b: c; d: e }",
		".x, .y { margin: 1px 2px; color: #fff }",
		"a { f: g(1, 2); u: url(http://example.com/x.png) }",
		"a { font-family: Arial, sans-serif }",
		"a>b { c: d !important }",
	}
	for _, in := range inputs {
		first := printer.Print(parse(t, in), printer.Options{Compact: true})
		second := printer.Print(parse(t, first), printer.Options{Compact: true})
		if first != second {
			t.Errorf("round trip not stable for %q:\nfirst:  %q\nsecond: %q", in, first, second)
		}
	}
}

func TestSourceMapRecording(t *testing.T) {
	sm := &printer.RecordingSourceMap{}
	root := parse(t, "a { b: c }\nd { e: f }")
	out := printer.Print(root, printer.Options{Compact: true, SourceMap: sm})

	maps := sm.Mappings()
	if len(maps) == 0 {
		t.Fatal("expected mappings to be recorded")
	}
	// mappings arrive in generated order with sane positions
	lastOffset := -1
	for _, m := range maps {
		if m.Generated.Offset < lastOffset {
			t.Fatalf("mappings out of generated order: %+v", maps)
		}
		lastOffset = m.Generated.Offset
		if m.Generated.Offset > len(out) {
			t.Fatalf("generated offset outside output: %+v", m)
		}
		if m.Original.File != "test.gss" || m.Original.Begin.Line == 0 {
			t.Fatalf("mapping lost its source location: %+v", m)
		}
	}
	// second ruleset starts on source line 2
	found := false
	for _, m := range maps {
		if m.Original.Begin.Line == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected a mapping back to source line 2")
	}
}

func TestPrintDoesNotMutate(t *testing.T) {
	root := parse(t, "a { b: c }")
	first := printer.Print(root, printer.Options{Compact: true})
	second := printer.Print(root, printer.Options{Compact: true})
	if first != second {
		t.Errorf("printing twice differs: %q vs %q", first, second)
	}
}
