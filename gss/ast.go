package gss

// Node is implemented by every element of the stylesheet tree. Nodes are
// created by the parser, mutated in place by passes, and treated as immutable
// once handed to a printer. A node is reachable from the root exactly once;
// subtrees are never shared between parents.
type Node interface {
	Loc() Location
	node()
}

// Source is one named input text.
type Source struct {
	Name    string
	Content string
}

// Root is the top of the merged tree for one compile job. Body holds
// rulesets, at-rules and comments from all sources in caller order.
type Root struct {
	Location Location
	Body     []Node
}

// Ruleset is a selector list plus its declaration block.
type Ruleset struct {
	Location  Location
	Selectors []*Selector
	Block     *DeclarationBlock
}

// Selector is one comma-separated alternative of a ruleset's selector list.
type Selector struct {
	Location Location
	Parts    []*SelectorPart
}

// PartKind enumerates the kinds of simple selector parts.
type PartKind int

const (
	PartElement PartKind = iota
	PartClass
	PartID
	PartPseudo
	PartAttribute
	PartCombinator
)

// SelectorPart is a single component of a selector. For PartClass the Value
// holds the class name without the leading dot; renaming rewrites it in
// place. PartCombinator values are " ", ">", "+" or "~". PartPseudo values
// keep their leading colon(s), PartAttribute values keep their brackets.
type SelectorPart struct {
	Location Location
	Kind     PartKind
	Value    string
}

// DeclarationBlock is the `{ ... }` body of a ruleset or mixin definition.
// Entries are *Declaration, *MixinCall or *Comment nodes.
type DeclarationBlock struct {
	Location Location
	Decls    []Node
}

// Declaration is one property: value pair.
type Declaration struct {
	Location  Location
	Property  string
	Value     *PropertyValue
	Important bool
}

// PropertyValue holds the value terms of a declaration. Terms are joined by
// spaces when printed; comma- and slash-separated groups appear as
// *CompositeValue terms.
type PropertyValue struct {
	Location Location
	Terms    []Node
}

// Literal is an identifier, keyword, url(...) or other atomic value term
// kept as raw text.
type Literal struct {
	Location Location
	Value    string
}

// Numeric is a number with an optional unit. Raw preserves the exact source
// spelling of the numeric part.
type Numeric struct {
	Location Location
	Raw      string
	Value    float64
	Unit     string
}

// StringLit is a quoted string value, quotes included.
type StringLit struct {
	Location Location
	Value    string
}

// HexColor is a #rgb/#rrggbb color value including the hash.
type HexColor struct {
	Location Location
	Value    string
}

// Function is a value function call. Args holds value terms; comma-separated
// argument lists appear as a single *CompositeValue.
type Function struct {
	Location Location
	Name     string
	Args     []Node
}

// CompositeValue groups value terms joined by one separator: " ", "," or "/".
type CompositeValue struct {
	Location  Location
	Separator string
	Values    []Node
}

// ImportRule is a shaped `@import` at-rule. Target keeps the raw spelling of
// the import target (quoted string or url(...)).
type ImportRule struct {
	Location Location
	Target   string
}

// CharsetRule is a shaped `@charset` at-rule.
type CharsetRule struct {
	Location Location
	Charset  string
}

// MediaRule is a shaped `@media` at-rule with its nested rules.
type MediaRule struct {
	Location Location
	Query    string
	Body     []Node
}

// BranchKind enumerates the branch kinds of a conditional chain.
type BranchKind int

const (
	BranchIf BranchKind = iota
	BranchElseIf
	BranchElse
)

// ConditionalRule is a whole `@if / @elseif / @else` chain kept as one node
// so elimination can splice the surviving branch in place.
type ConditionalRule struct {
	Location Location
	Branches []*ConditionalBranch
}

// ConditionalBranch is a single arm of a conditional chain. Condition is
// empty for BranchElse.
type ConditionalBranch struct {
	Location  Location
	Kind      BranchKind
	Condition string
	Body      []Node
}

// DefinitionRule is a `@def NAME value;` constant definition.
type DefinitionRule struct {
	Location Location
	Name     string
	Value    *PropertyValue
}

// MixinDefinition is a `@defmixin name(P1, P2) { ... }` template.
type MixinDefinition struct {
	Location Location
	Name     string
	Params   []string
	Block    *DeclarationBlock
}

// MixinCall is a `@mixin name(arg, ...);` reference inside a declaration
// block, replaced by the expanded template during the mixin pass.
type MixinCall struct {
	Location Location
	Name     string
	Args     []*PropertyValue
}

// UnknownAtRule is any at-rule the parser does not treat specially. The
// standard at-rule shaping pass turns recognized names into typed nodes;
// genuinely unknown rules survive to the output as-is.
type UnknownAtRule struct {
	Location Location
	Name     string // without the leading '@'
	Prelude  string
	HasBlock bool
	Body     []Node
}

// Comment is a /* ... */ comment kept as a standalone node.
type Comment struct {
	Location Location
	Text     string
}

func (n *Root) Loc() Location              { return n.Location }
func (n *Ruleset) Loc() Location           { return n.Location }
func (n *Selector) Loc() Location          { return n.Location }
func (n *SelectorPart) Loc() Location      { return n.Location }
func (n *DeclarationBlock) Loc() Location  { return n.Location }
func (n *Declaration) Loc() Location       { return n.Location }
func (n *PropertyValue) Loc() Location     { return n.Location }
func (n *Literal) Loc() Location           { return n.Location }
func (n *Numeric) Loc() Location           { return n.Location }
func (n *StringLit) Loc() Location         { return n.Location }
func (n *HexColor) Loc() Location          { return n.Location }
func (n *Function) Loc() Location          { return n.Location }
func (n *CompositeValue) Loc() Location    { return n.Location }
func (n *ImportRule) Loc() Location        { return n.Location }
func (n *CharsetRule) Loc() Location       { return n.Location }
func (n *MediaRule) Loc() Location         { return n.Location }
func (n *ConditionalRule) Loc() Location   { return n.Location }
func (n *ConditionalBranch) Loc() Location { return n.Location }
func (n *DefinitionRule) Loc() Location    { return n.Location }
func (n *MixinDefinition) Loc() Location   { return n.Location }
func (n *MixinCall) Loc() Location         { return n.Location }
func (n *UnknownAtRule) Loc() Location     { return n.Location }
func (n *Comment) Loc() Location           { return n.Location }

func (*Root) node()              {}
func (*Ruleset) node()           {}
func (*Selector) node()          {}
func (*SelectorPart) node()      {}
func (*DeclarationBlock) node()  {}
func (*Declaration) node()       {}
func (*PropertyValue) node()     {}
func (*Literal) node()           {}
func (*Numeric) node()           {}
func (*StringLit) node()         {}
func (*HexColor) node()          {}
func (*Function) node()          {}
func (*CompositeValue) node()    {}
func (*ImportRule) node()        {}
func (*CharsetRule) node()       {}
func (*MediaRule) node()         {}
func (*ConditionalRule) node()   {}
func (*ConditionalBranch) node() {}
func (*DefinitionRule) node()    {}
func (*MixinDefinition) node()   {}
func (*MixinCall) node()         {}
func (*UnknownAtRule) node()     {}
func (*Comment) node()           {}
