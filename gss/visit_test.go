package gss_test

import (
	"testing"

	"gssc/gss"
)

func lit(v string) *gss.Literal { return &gss.Literal{Value: v} }

func decl(prop string, terms ...gss.Node) *gss.Declaration {
	return &gss.Declaration{Property: prop, Value: &gss.PropertyValue{Terms: terms}}
}

func ruleset(class string, decls ...gss.Node) *gss.Ruleset {
	return &gss.Ruleset{
		Selectors: []*gss.Selector{{Parts: []*gss.SelectorPart{{Kind: gss.PartClass, Value: class}}}},
		Block:     &gss.DeclarationBlock{Decls: decls},
	}
}

func TestVisitOrder(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{
		ruleset("a", decl("x", lit("one"))),
		ruleset("b"),
	}}

	var entered, left []string
	name := func(n gss.Node) string {
		switch n := n.(type) {
		case *gss.Root:
			return "root"
		case *gss.Ruleset:
			return "ruleset." + n.Selectors[0].Parts[0].Value
		case *gss.Selector:
			return "selector"
		case *gss.SelectorPart:
			return "part." + n.Value
		case *gss.DeclarationBlock:
			return "block"
		case *gss.Declaration:
			return "decl." + n.Property
		case *gss.PropertyValue:
			return "value"
		case *gss.Literal:
			return "lit." + n.Value
		}
		return "?"
	}
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		entered = append(entered, name(n))
		return true
	}, func(_ *gss.Cursor, n gss.Node) {
		left = append(left, name(n))
	})

	expect := []string{
		"root",
		"ruleset.a", "selector", "part.a", "block", "decl.x", "value", "lit.one",
		"ruleset.b", "selector", "part.b", "block",
	}
	if len(entered) != len(expect) {
		t.Fatalf("entered %d nodes, want %d: %v", len(entered), len(expect), entered)
	}
	for i := range expect {
		if entered[i] != expect[i] {
			t.Fatalf("enter order mismatch at %d: got %v", i, entered)
		}
	}

	// post-order: a leaf is left before its parent
	idx := func(list []string, s string) int {
		for i, v := range list {
			if v == s {
				return i
			}
		}
		return -1
	}
	if idx(left, "lit.one") > idx(left, "decl.x") || idx(left, "decl.x") > idx(left, "ruleset.a") {
		t.Errorf("unexpected leave order: %v", left)
	}
	if left[len(left)-1] != "root" {
		t.Errorf("root must be left last: %v", left)
	}
}

func TestVisitSkipChildren(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a", decl("x", lit("one")))}}
	var seen []string
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		if _, ok := n.(*gss.Ruleset); ok {
			seen = append(seen, "ruleset")
			return false
		}
		if _, ok := n.(*gss.Declaration); ok {
			seen = append(seen, "decl")
		}
		return true
	}, nil)
	for _, s := range seen {
		if s == "decl" {
			t.Fatal("children visited although Enter returned false")
		}
	}
}

func TestVisitStop(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a"), ruleset("b")}}
	var seen int
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		if _, ok := n.(*gss.Ruleset); ok {
			seen++
			c.Stop()
		}
		return true
	}, nil)
	if seen != 1 {
		t.Fatalf("expected traversal to stop after first ruleset, visited %d", seen)
	}
}

func TestVisitRemove(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a"), ruleset("b"), ruleset("c")}}
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		if r, ok := n.(*gss.Ruleset); ok && r.Selectors[0].Parts[0].Value == "b" {
			c.Remove()
			return false
		}
		return true
	}, nil)
	if len(root.Body) != 2 {
		t.Fatalf("expected 2 rules after removal, got %d", len(root.Body))
	}
	for _, n := range root.Body {
		if n.(*gss.Ruleset).Selectors[0].Parts[0].Value == "b" {
			t.Fatal("removed node still present")
		}
	}
}

func TestVisitReplaceIsVisited(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a")}}
	var visited []string
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		if r, ok := n.(*gss.Ruleset); ok {
			name := r.Selectors[0].Parts[0].Value
			visited = append(visited, name)
			if name == "a" {
				c.Replace(ruleset("x"), ruleset("y"))
				return false
			}
		}
		return true
	}, nil)
	if len(visited) != 3 || visited[1] != "x" || visited[2] != "y" {
		t.Fatalf("replacement nodes must be visited in order, got %v", visited)
	}
	if len(root.Body) != 2 {
		t.Fatalf("expected 2 rules after replace, got %d", len(root.Body))
	}
}

func TestVisitInsertAfter(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a"), ruleset("b")}}
	var visited []string
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		if r, ok := n.(*gss.Ruleset); ok {
			name := r.Selectors[0].Parts[0].Value
			visited = append(visited, name)
			if name == "a" {
				c.InsertAfter(ruleset("n"))
			}
			return false
		}
		return true
	}, nil)
	want := []string{"a", "n", "b"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
	if len(root.Body) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(root.Body))
	}
}

func TestVisitImmutableContainers(t *testing.T) {
	root := &gss.Root{Body: []gss.Node{ruleset("a")}}
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		if _, ok := n.(*gss.SelectorPart); ok {
			if c.Mutable() {
				t.Error("selector parts must not be structurally mutable")
			}
			c.Remove() // must be a no-op
		}
		return true
	}, nil)
	if len(root.Body[0].(*gss.Ruleset).Selectors[0].Parts) != 1 {
		t.Fatal("remove on immutable container must not change the tree")
	}
}

func TestCloneAndEqual(t *testing.T) {
	orig := ruleset("a", decl("x", lit("one"), &gss.Numeric{Raw: "10", Value: 10, Unit: "px"}))
	clone := gss.Clone(orig)
	if !gss.Equal(orig, clone) {
		t.Fatal("clone must compare equal to its original")
	}
	clone.(*gss.Ruleset).Selectors[0].Parts[0].Value = "b"
	if gss.Equal(orig, clone) {
		t.Fatal("mutating the clone must not affect equality with the original")
	}
	if orig.Selectors[0].Parts[0].Value != "a" {
		t.Fatal("clone shares state with the original")
	}
}
