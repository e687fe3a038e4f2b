package passes

import (
	"strings"

	"gssc/gss"
)

// EliminateConditionals resolves every @if/@elseif/@else chain against the
// set of true condition names and splices the body of the first matching
// branch in place of the chain. A chain with no matching branch disappears.
// Spliced rules are visited again, so nested conditionals resolve too.
type EliminateConditionals struct {
	TrueConditions map[string]bool
}

func (*EliminateConditionals) Name() string { return "eliminate-conditionals" }

func (p *EliminateConditionals) Run(root *gss.Root, em *gss.ErrorManager) {
	gss.VisitFunc(root, func(c *gss.Cursor, n gss.Node) bool {
		rule, ok := n.(*gss.ConditionalRule)
		if !ok {
			return true
		}
		for _, b := range rule.Branches {
			if b.Kind == gss.BranchElse || p.holds(b.Condition) {
				if len(b.Body) == 0 {
					c.Remove()
				} else {
					c.Replace(b.Body...)
				}
				return false
			}
		}
		c.Remove()
		return false
	}, nil)
}

// holds evaluates one branch condition. A condition is a bare name or its
// '!' negation.
func (p *EliminateConditionals) holds(cond string) bool {
	if neg, ok := strings.CutPrefix(cond, "!"); ok {
		return !p.TrueConditions[strings.TrimSpace(neg)]
	}
	return p.TrueConditions[cond]
}
