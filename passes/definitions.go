package passes

import (
	"fmt"

	"gssc/gss"
)

// ReplaceConstants resolves @def constants in a single document-order
// traversal: each definition's own value is substituted before the
// definition is recorded and removed, so later definitions and declarations
// can reference earlier constants transitively. A constant referencing
// itself is left unresolved rather than looping.
type ReplaceConstants struct {
	defs map[string][]gss.Node
}

func (*ReplaceConstants) Name() string { return "replace-constants" }

func (p *ReplaceConstants) Run(root *gss.Root, em *gss.ErrorManager) {
	p.defs = make(map[string][]gss.Node)
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		lit, ok := n.(*gss.Literal)
		if !ok || !c.Mutable() {
			return true
		}
		if terms, ok := p.defs[lit.Value]; ok {
			c.Replace(cloneTerms(terms)...)
			return false
		}
		if isConstantName(lit.Value) {
			em.ReportWarning(gss.Error{
				Message: fmt.Sprintf("constant %s is not defined", lit.Value),
				Loc:     lit.Loc(),
			})
		}
		return true
	}, func(c *gss.Cursor, n gss.Node) {
		def, ok := n.(*gss.DefinitionRule)
		if !ok {
			return
		}
		if _, dup := p.defs[def.Name]; dup {
			em.ReportWarning(gss.Error{
				Message: fmt.Sprintf("constant %s redefined", def.Name),
				Loc:     def.Loc(),
			})
		}
		p.defs[def.Name] = def.Value.Terms
		c.Remove()
	})
}

// isConstantName reports whether an identifier follows the uppercase
// constant convention and so should have been defined.
func isConstantName(s string) bool {
	if len(s) < 2 {
		return false
	}
	underscore := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		case c == '_' && i > 0:
			underscore = true
		default:
			return false
		}
	}
	return underscore
}

func cloneTerms(terms []gss.Node) []gss.Node {
	out := make([]gss.Node, len(terms))
	for i, t := range terms {
		out[i] = gss.Clone(t)
	}
	return out
}
