package passes

import (
	"fmt"

	"gssc/gss"
)

// ReplaceMixins expands @mixin calls from their @defmixin templates in one
// document-order traversal, so a mixin must be defined before it is called.
// Expansion splices the template's declarations in place of the call with
// every parameter reference replaced by the call's argument terms. A call
// that cannot be resolved is reported and dropped; its sibling declarations
// survive.
type ReplaceMixins struct {
	defs map[string]*gss.MixinDefinition
}

func (*ReplaceMixins) Name() string { return "replace-mixins" }

func (p *ReplaceMixins) Run(root *gss.Root, em *gss.ErrorManager) {
	p.defs = make(map[string]*gss.MixinDefinition)
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		switch n := n.(type) {
		case *gss.MixinDefinition:
			if _, dup := p.defs[n.Name]; dup {
				em.ReportWarning(gss.Error{
					Message: fmt.Sprintf("mixin %s redefined", n.Name),
					Loc:     n.Loc(),
				})
			}
			p.defs[n.Name] = n
			c.Remove()
			return false
		case *gss.MixinCall:
			def, ok := p.defs[n.Name]
			if !ok {
				em.Report(gss.Error{
					Message: fmt.Sprintf("undefined mixin %q", n.Name),
					Loc:     n.Loc(),
				})
				c.Remove()
				return false
			}
			if len(n.Args) != len(def.Params) {
				em.Report(gss.Error{
					Message: fmt.Sprintf("mixin %q takes %d arguments, got %d", n.Name, len(def.Params), len(n.Args)),
					Loc:     n.Loc(),
				})
				c.Remove()
				return false
			}
			decls := p.expand(def, n)
			if len(decls) == 0 {
				c.Remove()
			} else {
				c.Replace(decls...)
			}
			return false
		}
		return true
	}, nil)
}

// expand clones the template block and substitutes parameter references with
// the call's argument terms.
func (p *ReplaceMixins) expand(def *gss.MixinDefinition, call *gss.MixinCall) []gss.Node {
	args := make(map[string][]gss.Node, len(def.Params))
	for i, param := range def.Params {
		args[param] = call.Args[i].Terms
	}
	var out []gss.Node
	for _, d := range def.Block.Decls {
		clone := gss.Clone(d)
		if decl, ok := clone.(*gss.Declaration); ok && decl.Value != nil {
			decl.Value.Terms = substituteParams(decl.Value.Terms, args)
		}
		out = append(out, clone)
	}
	return out
}

// substituteParams rewrites a term list, splicing argument terms in place of
// parameter name literals. Recurses into functions and composite values.
func substituteParams(terms []gss.Node, args map[string][]gss.Node) []gss.Node {
	var out []gss.Node
	for _, t := range terms {
		switch t := t.(type) {
		case *gss.Literal:
			if repl, ok := args[t.Value]; ok {
				out = append(out, cloneTerms(repl)...)
				continue
			}
		case *gss.Function:
			t.Args = substituteParams(t.Args, args)
		case *gss.CompositeValue:
			t.Values = substituteParams(t.Values, args)
		}
		out = append(out, t)
	}
	return out
}
