package passes

import (
	"gssc/gss"
)

// EliminateEmptyRulesets removes rulesets whose declaration block holds no
// declarations, and media rules left with no rules. Runs post-order so a
// media rule emptied by ruleset removal is removed in the same traversal.
type EliminateEmptyRulesets struct{}

func (*EliminateEmptyRulesets) Name() string { return "eliminate-empty-rulesets" }

func (*EliminateEmptyRulesets) Run(root *gss.Root, _ *gss.ErrorManager) {
	gss.VisitFunc(root, nil, func(c *gss.Cursor, n gss.Node) {
		switch n := n.(type) {
		case *gss.Ruleset:
			if !hasDeclarations(n.Block) {
				c.Remove()
			}
		case *gss.MediaRule:
			if len(n.Body) == 0 {
				c.Remove()
			}
		}
	})
}

func hasDeclarations(block *gss.DeclarationBlock) bool {
	if block == nil {
		return false
	}
	for _, d := range block.Decls {
		if _, ok := d.(*gss.Comment); !ok {
			return true
		}
	}
	return false
}

// positionalProperties take up to four whitespace-separated values in
// top/right/bottom/left order.
var positionalProperties = map[string]bool{
	"margin":       true,
	"padding":      true,
	"border-width": true,
	"border-color": true,
	"border-style": true,
	"inset":        true,
}

// AbbreviatePositionalValues shortens positional shorthands to the fewest
// terms with the same meaning: the left value is dropped when it equals the
// right one, then bottom when it equals top, then right when it equals top.
type AbbreviatePositionalValues struct{}

func (*AbbreviatePositionalValues) Name() string { return "abbreviate-positional-values" }

func (*AbbreviatePositionalValues) Run(root *gss.Root, _ *gss.ErrorManager) {
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		decl, ok := n.(*gss.Declaration)
		if !ok {
			return true
		}
		if !positionalProperties[decl.Property] || decl.Value == nil {
			return false
		}
		decl.Value.Terms = abbreviate(decl.Value.Terms)
		return false
	}, nil)
}

func abbreviate(terms []gss.Node) []gss.Node {
	if len(terms) < 2 || len(terms) > 4 {
		return terms
	}
	for _, t := range terms {
		switch t.(type) {
		case *gss.CompositeValue, *gss.Function:
			return terms
		}
	}
	// expand to top/right/bottom/left, then drop redundant tail values
	t, r := terms[0], terms[1]
	b, l := t, r
	if len(terms) > 2 {
		b = terms[2]
	}
	if len(terms) > 3 {
		l = terms[3]
	}
	out := []gss.Node{t, r, b, l}
	if gss.Equal(l, r) {
		out = out[:3]
		if gss.Equal(b, t) {
			out = out[:2]
			if gss.Equal(r, t) {
				out = out[:1]
			}
		}
	}
	return out
}
