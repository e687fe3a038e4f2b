package passes

import (
	"strconv"
	"strings"

	"gssc/gss"
)

// FlipOrientation converts a left-to-right stylesheet into its
// right-to-left mirror: left/right property names are swapped, directional
// keyword values are mirrored, four-value positional shorthands exchange
// their right and left values and horizontal background positions are
// reflected.
type FlipOrientation struct{}

func (*FlipOrientation) Name() string { return "flip-orientation" }

// keywordFlippedProperties are the properties whose left/right keyword
// values mirror.
var keywordFlippedProperties = map[string]bool{
	"clear":      true,
	"float":      true,
	"text-align": true,
}

func (p *FlipOrientation) Run(root *gss.Root, _ *gss.ErrorManager) {
	gss.VisitFunc(root, func(_ *gss.Cursor, n gss.Node) bool {
		decl, ok := n.(*gss.Declaration)
		if !ok {
			return true
		}
		prop := decl.Property
		decl.Property = flipName(prop)
		if decl.Value == nil {
			return false
		}
		switch {
		case keywordFlippedProperties[prop]:
			flipKeywords(decl.Value.Terms)
		case positionalProperties[prop] && len(decl.Value.Terms) == 4:
			t := decl.Value.Terms
			t[1], t[3] = t[3], t[1]
		case prop == "border-radius" && len(decl.Value.Terms) == 4:
			// corners run top-left, top-right, bottom-right, bottom-left
			t := decl.Value.Terms
			t[0], t[1] = t[1], t[0]
			t[2], t[3] = t[3], t[2]
		case prop == "background-position" || prop == "background":
			flipBackgroundPosition(decl.Value.Terms)
		}
		return false
	}, nil)
}

// flipName swaps the left/right component of a property name, so
// margin-left becomes margin-right and border-top-right-radius becomes
// border-top-left-radius.
func flipName(prop string) string {
	if !strings.Contains(prop, "left") && !strings.Contains(prop, "right") {
		return prop
	}
	s := strings.ReplaceAll(prop, "left", "\x00")
	s = strings.ReplaceAll(s, "right", "left")
	return strings.ReplaceAll(s, "\x00", "right")
}

func flipKeywords(terms []gss.Node) {
	for _, t := range terms {
		lit, ok := t.(*gss.Literal)
		if !ok {
			continue
		}
		switch lit.Value {
		case "left":
			lit.Value = "right"
		case "right":
			lit.Value = "left"
		}
	}
}

// flipBackgroundPosition mirrors the horizontal component: left/right
// keywords swap and the first percentage reflects around the center.
func flipBackgroundPosition(terms []gss.Node) {
	for _, t := range terms {
		switch t := t.(type) {
		case *gss.Literal:
			switch t.Value {
			case "left":
				t.Value = "right"
				return
			case "right":
				t.Value = "left"
				return
			}
		case *gss.Numeric:
			if t.Unit == "%" {
				t.Value = 100 - t.Value
				t.Raw = strconv.FormatFloat(t.Value, 'f', -1, 64)
				return
			}
		}
	}
}
