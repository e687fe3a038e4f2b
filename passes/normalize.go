package passes

import (
	"fmt"
	"strings"

	"gssc/gss"
)

// CreateStandardAtRules shapes recognized generic at-rules into their typed
// forms: @media, @import and @charset. The parser keeps every non-GSS
// at-rule generic; this pass gives the standard ones structure so later
// passes and the printers can treat them specifically. Unrecognized at-rules
// pass through to the output untouched.
type CreateStandardAtRules struct{}

func (*CreateStandardAtRules) Name() string { return "create-standard-at-rules" }

func (*CreateStandardAtRules) Run(root *gss.Root, em *gss.ErrorManager) {
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		rule, ok := n.(*gss.UnknownAtRule)
		if !ok {
			return true
		}
		switch rule.Name {
		case "media":
			if !rule.HasBlock {
				em.Report(gss.Error{Message: "@media rule is missing its block", Loc: rule.Loc()})
				c.Remove()
				return false
			}
			c.Replace(&gss.MediaRule{Location: rule.Location, Query: rule.Prelude, Body: rule.Body})
		case "import":
			if rule.HasBlock {
				em.Report(gss.Error{Message: "@import rule must not have a block", Loc: rule.Loc()})
				c.Remove()
				return false
			}
			c.Replace(&gss.ImportRule{Location: rule.Location, Target: rule.Prelude})
		case "charset":
			if rule.HasBlock {
				em.Report(gss.Error{Message: "@charset rule must not have a block", Loc: rule.Loc()})
				c.Remove()
				return false
			}
			c.Replace(&gss.CharsetRule{Location: rule.Location, Charset: rule.Prelude})
		}
		return true
	}, nil)
}

// standardFunctions is the set of CSS value functions accepted without the
// allow-non-standard escape hatch. Vendor-prefixed names are accepted by
// prefix stripping in isStandardFunction.
var standardFunctions = map[string]bool{
	"annotation":        true,
	"attr":              true,
	"blur":              true,
	"brightness":        true,
	"calc":              true,
	"character-variant": true,
	"circle":            true,
	"clamp":             true,
	"color":             true,
	"color-mix":         true,
	"conic-gradient":    true,
	"contrast":          true,
	"counter":           true,
	"counters":          true,
	"cubic-bezier":      true,
	"drop-shadow":       true,
	"element":           true,
	"ellipse":           true,
	"env":               true,
	"fit-content":       true,
	"format":            true,
	"grayscale":         true,
	"hsl":               true,
	"hsla":              true,
	"hue-rotate":        true,
	"hwb":               true,
	"image-set":         true,
	"inset":             true,
	"invert":            true,
	"lab":               true,
	"lch":               true,
	"linear-gradient":   true,
	"local":             true,
	"matrix":            true,
	"matrix3d":          true,
	"max":               true,
	"min":               true,
	"minmax":            true,
	"opacity":           true,
	"oklab":             true,
	"oklch":             true,
	"ornaments":         true,
	"perspective":       true,
	"polygon":           true,
	"radial-gradient":   true,
	"rect":              true,
	"repeat":            true,
	"repeating-conic-gradient":  true,
	"repeating-linear-gradient": true,
	"repeating-radial-gradient": true,
	"rgb":        true,
	"rgba":       true,
	"rotate":     true,
	"rotate3d":   true,
	"rotateX":    true,
	"rotateY":    true,
	"rotateZ":    true,
	"saturate":   true,
	"scale":      true,
	"scale3d":    true,
	"scaleX":     true,
	"scaleY":     true,
	"scaleZ":     true,
	"sepia":      true,
	"skew":       true,
	"skewX":      true,
	"skewY":      true,
	"steps":      true,
	"styleset":   true,
	"stylistic":  true,
	"swash":      true,
	"translate":  true,
	"translate3d": true,
	"translateX": true,
	"translateY": true,
	"translateZ": true,
	"url":        true,
	"var":        true,
}

func isStandardFunction(name string) bool {
	if standardFunctions[name] {
		return true
	}
	for _, prefix := range []string{"-moz-", "-webkit-", "-ms-", "-o-"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return standardFunctions[rest]
		}
	}
	return false
}

// ValidateFunctions checks every value function against the standard set
// plus the configured allow list. A declaration using an unknown function is
// reported and dropped whole, keeping the output free of values no browser
// understands.
type ValidateFunctions struct {
	AllowNonStandard bool
	Allowed          map[string]bool
}

func (*ValidateFunctions) Name() string { return "validate-functions" }

func (p *ValidateFunctions) Run(root *gss.Root, em *gss.ErrorManager) {
	if p.AllowNonStandard {
		return
	}
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		decl, ok := n.(*gss.Declaration)
		if !ok {
			return true
		}
		if bad := p.findUnknown(decl.Value); bad != nil {
			em.Report(gss.Error{
				Message: fmt.Sprintf("unknown function %q", bad.Name),
				Loc:     bad.Loc(),
			})
			c.Remove()
			return false
		}
		return false
	}, nil)
}

func (p *ValidateFunctions) findUnknown(n gss.Node) *gss.Function {
	switch n := n.(type) {
	case nil:
		return nil
	case *gss.PropertyValue:
		return p.findUnknownList(n.Terms)
	case *gss.CompositeValue:
		return p.findUnknownList(n.Values)
	case *gss.Function:
		if !isStandardFunction(n.Name) && !p.Allowed[n.Name] {
			return n
		}
		return p.findUnknownList(n.Args)
	}
	return nil
}

func (p *ValidateFunctions) findUnknownList(terms []gss.Node) *gss.Function {
	for _, t := range terms {
		if bad := p.findUnknown(t); bad != nil {
			return bad
		}
	}
	return nil
}

// FixupFontDeclarations regroups the size and line-height of a font
// shorthand into one slash-joined value so later passes see it as a single
// term and the printers never separate the pair with whitespace.
type FixupFontDeclarations struct{}

func (*FixupFontDeclarations) Name() string { return "fixup-font-declarations" }

func (*FixupFontDeclarations) Run(root *gss.Root, _ *gss.ErrorManager) {
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		decl, ok := n.(*gss.Declaration)
		if !ok {
			return true
		}
		if !strings.EqualFold(decl.Property, "font") || decl.Value == nil {
			return false
		}
		fixupSlashPair(decl.Value)
		return false
	}, nil)
}

// fixupSlashPair rewrites [..., size, "/", lineheight, ...] term sequences
// into a single slash composite.
func fixupSlashPair(v *gss.PropertyValue) {
	terms := v.Terms
	for i := 1; i+1 < len(terms); i++ {
		sep, ok := terms[i].(*gss.Literal)
		if !ok || sep.Value != "/" {
			continue
		}
		pair := &gss.CompositeValue{
			Location:  terms[i-1].Loc(),
			Separator: "/",
			Values:    []gss.Node{terms[i-1], terms[i+1]},
		}
		terms = append(terms[:i-1], append([]gss.Node{pair}, terms[i+2:]...)...)
		i-- // the composite may be followed by another slash
	}
	v.Terms = terms
}
