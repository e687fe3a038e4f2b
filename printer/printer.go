// Package printer renders a stylesheet tree to CSS text. The compact mode
// emits the shortest equivalent text, the pretty mode emits indented
// human-readable output. Both renderers report node positions to a source
// map accumulator as they write.
package printer

import (
	"strings"

	"gssc/gss"
)

// Options configures one rendering.
type Options struct {
	// Compact strips all optional whitespace, trailing semicolons and
	// comments from the output.
	Compact bool
	// Copyright is prepended verbatim before the first rule.
	Copyright string
	// SourceMap receives generated-to-original mappings; nil disables
	// recording.
	SourceMap SourceMapAccumulator
}

// Print renders the tree. The tree is not modified; printing the same tree
// twice yields identical text.
func Print(root *gss.Root, o Options) string {
	p := &printer{
		compact: o.Compact,
		sm:      o.SourceMap,
		pos:     gss.Position{Line: 1, Column: 1},
	}
	if p.sm == nil {
		p.sm = NopSourceMap{}
	}
	if o.Copyright != "" {
		p.write(o.Copyright)
		if !strings.HasSuffix(o.Copyright, "\n") {
			p.write("\n")
		}
	}
	p.printBody(root.Body, 0)
	return p.sb.String()
}

type printer struct {
	sb      strings.Builder
	compact bool
	sm      SourceMapAccumulator
	pos     gss.Position
	indent  int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			p.pos.Line++
			p.pos.Column = 1
		} else {
			p.pos.Column++
		}
	}
	p.pos.Offset += len(s)
}

// emit writes s after reporting the node location it renders.
func (p *printer) emit(loc gss.Location, s string) {
	if !loc.IsUnknown() {
		p.sm.Add(p.pos, loc)
	}
	p.write(s)
}

func (p *printer) newline() {
	if !p.compact {
		p.write("\n")
	}
}

func (p *printer) writeIndent() {
	if !p.compact {
		p.write(strings.Repeat("  ", p.indent))
	}
}

func (p *printer) printBody(body []gss.Node, depth int) {
	p.indent = depth
	for _, n := range body {
		p.writeIndent()
		switch n := n.(type) {
		case *gss.Ruleset:
			p.printRuleset(n)
		case *gss.MediaRule:
			p.emit(n.Location, "@media "+n.Query)
			p.openBlock()
			p.printBody(n.Body, depth+1)
			p.indent = depth
			p.closeBlock()
		case *gss.ImportRule:
			p.emit(n.Location, "@import "+n.Target+";")
			p.newline()
		case *gss.CharsetRule:
			p.emit(n.Location, "@charset "+n.Charset+";")
			p.newline()
		case *gss.UnknownAtRule:
			p.printUnknownAtRule(n, depth)
		case *gss.Comment:
			if !p.compact {
				p.emit(n.Location, n.Text)
				p.newline()
			}
		case *gss.DefinitionRule:
			p.emit(n.Location, "@def "+n.Name+" ")
			p.printValue(n.Value)
			p.write(";")
			p.newline()
		case *gss.MixinDefinition:
			p.printMixinDefinition(n, depth)
		case *gss.ConditionalRule:
			p.printConditional(n, depth)
		}
	}
	p.indent = depth
}

func (p *printer) openBlock() {
	if p.compact {
		p.write("{")
		return
	}
	p.write(" {\n")
}

func (p *printer) closeBlock() {
	p.writeIndent()
	p.write("}")
	p.newline()
}

func (p *printer) printRuleset(n *gss.Ruleset) {
	for i, sel := range n.Selectors {
		if i > 0 {
			if p.compact {
				p.write(",")
			} else {
				p.write(", ")
			}
		}
		p.printSelector(sel)
	}
	p.openBlock()
	p.indent++
	p.printDecls(n.Block)
	p.indent--
	p.closeBlock()
}

func (p *printer) printSelector(sel *gss.Selector) {
	for _, part := range sel.Parts {
		switch part.Kind {
		case gss.PartClass:
			p.emit(part.Location, "."+part.Value)
		case gss.PartID:
			p.emit(part.Location, "#"+part.Value)
		case gss.PartCombinator:
			if part.Value == " " || p.compact {
				p.emit(part.Location, part.Value)
			} else {
				p.emit(part.Location, " "+part.Value+" ")
			}
		default:
			p.emit(part.Location, part.Value)
		}
	}
}

func (p *printer) printDecls(block *gss.DeclarationBlock) {
	if block == nil {
		return
	}
	last := -1
	if p.compact {
		for i, d := range block.Decls {
			if _, ok := d.(*gss.Comment); !ok {
				last = i
			}
		}
	}
	for i, d := range block.Decls {
		switch d := d.(type) {
		case *gss.Comment:
			if !p.compact {
				p.writeIndent()
				p.emit(d.Location, d.Text)
				p.newline()
			}
		case *gss.Declaration:
			p.writeIndent()
			p.emit(d.Location, d.Property+":")
			if !p.compact {
				p.write(" ")
			}
			p.printValue(d.Value)
			if d.Important {
				if p.compact {
					p.write("!important")
				} else {
					p.write(" !important")
				}
			}
			// the final semicolon of a compact block is dead weight
			if !p.compact || i != last {
				p.write(";")
			}
			p.newline()
		case *gss.MixinCall:
			p.printMixinCall(d, i == last)
		}
	}
}

func (p *printer) printValue(v *gss.PropertyValue) {
	if v == nil {
		return
	}
	p.printTerms(v.Terms)
}

func (p *printer) printTerms(terms []gss.Node) {
	for i, t := range terms {
		if i > 0 && !p.suppressSpace(terms, i) {
			p.write(" ")
		}
		p.printTerm(t)
	}
}

// suppressSpace drops the separator space next to comma literals, so
// function arguments render as "a," + " b" in pretty and "a,b" in compact.
// Compact mode also drops the spaces around slash separators.
func (p *printer) suppressSpace(terms []gss.Node, i int) bool {
	if isSeparatorLiteral(terms[i], ",") {
		return true
	}
	if isSeparatorLiteral(terms[i-1], ",") {
		return p.compact
	}
	if p.compact && (isSeparatorLiteral(terms[i], "/") || isSeparatorLiteral(terms[i-1], "/")) {
		return true
	}
	return false
}

func isSeparatorLiteral(n gss.Node, sep string) bool {
	lit, ok := n.(*gss.Literal)
	return ok && lit.Value == sep
}

func (p *printer) printTerm(n gss.Node) {
	switch n := n.(type) {
	case *gss.Literal:
		p.emit(n.Location, n.Value)
	case *gss.Numeric:
		p.emit(n.Location, n.Raw+n.Unit)
	case *gss.StringLit:
		p.emit(n.Location, n.Value)
	case *gss.HexColor:
		p.emit(n.Location, n.Value)
	case *gss.Function:
		p.emit(n.Location, n.Name+"(")
		p.printTerms(n.Args)
		p.write(")")
	case *gss.CompositeValue:
		sep := n.Separator
		if sep == "," && !p.compact {
			sep = ", "
		}
		for i, v := range n.Values {
			if i > 0 {
				p.write(sep)
			}
			p.printTerm(v)
		}
	}
}

func (p *printer) printUnknownAtRule(n *gss.UnknownAtRule, depth int) {
	head := "@" + n.Name
	if n.Prelude != "" {
		head += " " + n.Prelude
	}
	p.emit(n.Location, head)
	if !n.HasBlock {
		p.write(";")
		p.newline()
		return
	}
	p.openBlock()
	p.printBody(n.Body, depth+1)
	p.indent = depth
	p.closeBlock()
}

func (p *printer) printMixinDefinition(n *gss.MixinDefinition, depth int) {
	p.emit(n.Location, "@defmixin "+n.Name+"("+strings.Join(n.Params, ", ")+")")
	p.openBlock()
	p.indent++
	p.printDecls(n.Block)
	p.indent = depth
	p.closeBlock()
}

func (p *printer) printMixinCall(n *gss.MixinCall, last bool) {
	p.writeIndent()
	p.emit(n.Location, "@mixin "+n.Name+"(")
	for i, arg := range n.Args {
		if i > 0 {
			if p.compact {
				p.write(",")
			} else {
				p.write(", ")
			}
		}
		p.printValue(arg)
	}
	p.write(")")
	if !p.compact || !last {
		p.write(";")
	}
	p.newline()
}

func (p *printer) printConditional(n *gss.ConditionalRule, depth int) {
	for i, b := range n.Branches {
		if i > 0 {
			p.writeIndent()
		}
		switch b.Kind {
		case gss.BranchIf:
			p.emit(b.Location, "@if "+b.Condition)
		case gss.BranchElseIf:
			p.emit(b.Location, "@elseif "+b.Condition)
		case gss.BranchElse:
			p.emit(b.Location, "@else")
		}
		p.openBlock()
		p.printBody(b.Body, depth+1)
		p.indent = depth
		p.closeBlock()
	}
}
