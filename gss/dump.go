package gss

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the tree as an indented outline for troubleshooting. The
// output is for humans reading logs, not for parsing.
func Dump(root *Root) string {
	tw := newTreeWriter()
	tw.line(0, "root (%d rules)", len(root.Body))
	for _, n := range root.Body {
		dumpNode(tw, 1, n)
	}
	return tw.String()
}

type treeWriter struct {
	w *strings.Builder
}

func newTreeWriter() *treeWriter {
	return &treeWriter{w: &strings.Builder{}}
}

func (tw treeWriter) String() string {
	return tw.w.String()
}

func (tw treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw treeWriter) text(depth int, label, value string) {
	for range depth {
		tw.w.WriteString("  ")
	}
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

func dumpNode(tw *treeWriter, depth int, n Node) {
	switch n := n.(type) {
	case *Ruleset:
		sels := make([]string, len(n.Selectors))
		for i, s := range n.Selectors {
			parts := make([]string, len(s.Parts))
			for j, p := range s.Parts {
				parts[j] = p.Value
			}
			sels[i] = strings.Join(parts, "")
		}
		tw.line(depth, "ruleset %s", strings.Join(sels, ", "))
		if n.Block != nil {
			for _, d := range n.Block.Decls {
				dumpNode(tw, depth+1, d)
			}
		}
	case *Declaration:
		label := "decl " + n.Property
		if n.Important {
			label += " !important"
		}
		tw.text(depth, label, dumpValue(n.Value))
	case *MixinCall:
		tw.line(depth, "mixin call %s (%d args)", n.Name, len(n.Args))
	case *MixinDefinition:
		tw.line(depth, "defmixin %s(%s)", n.Name, strings.Join(n.Params, ", "))
		if n.Block != nil {
			for _, d := range n.Block.Decls {
				dumpNode(tw, depth+1, d)
			}
		}
	case *DefinitionRule:
		tw.text(depth, "def "+n.Name, dumpValue(n.Value))
	case *ConditionalRule:
		tw.line(depth, "conditional (%d branches)", len(n.Branches))
		for _, b := range n.Branches {
			tw.text(depth+1, "branch", b.Condition)
			for _, r := range b.Body {
				dumpNode(tw, depth+2, r)
			}
		}
	case *MediaRule:
		tw.text(depth, "media", n.Query)
		for _, r := range n.Body {
			dumpNode(tw, depth+1, r)
		}
	case *ImportRule:
		tw.text(depth, "import", n.Target)
	case *CharsetRule:
		tw.text(depth, "charset", n.Charset)
	case *UnknownAtRule:
		tw.text(depth, "at-rule @"+n.Name, n.Prelude)
		for _, r := range n.Body {
			dumpNode(tw, depth+1, r)
		}
	case *Comment:
		tw.text(depth, "comment", n.Text)
	default:
		tw.line(depth, "%T", n)
	}
}

func dumpValue(v *PropertyValue) string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	for i, t := range v.Terms {
		if i > 0 {
			sb.WriteString(" ")
		}
		dumpTerm(&sb, t)
	}
	return sb.String()
}

func dumpTerm(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Literal:
		sb.WriteString(n.Value)
	case *Numeric:
		sb.WriteString(n.Raw + n.Unit)
	case *StringLit:
		sb.WriteString(n.Value)
	case *HexColor:
		sb.WriteString(n.Value)
	case *Function:
		sb.WriteString(n.Name + "(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(" ")
			}
			dumpTerm(sb, a)
		}
		sb.WriteString(")")
	case *CompositeValue:
		for i, v := range n.Values {
			if i > 0 {
				sb.WriteString(n.Separator)
			}
			dumpTerm(sb, v)
		}
	}
}
