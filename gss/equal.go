package gss

// Equal reports structural equality of two subtrees. Locations are ignored:
// nodes synthesized by passes compare equal to parsed ones of the same
// shape. Equality is spelled out per node kind so its semantics are
// versioned with the node types instead of drifting with field additions.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Root:
		b, ok := b.(*Root)
		return ok && equalLists(a.Body, b.Body)
	case *Ruleset:
		b, ok := b.(*Ruleset)
		if !ok || len(a.Selectors) != len(b.Selectors) {
			return false
		}
		for i := range a.Selectors {
			if !Equal(a.Selectors[i], b.Selectors[i]) {
				return false
			}
		}
		return Equal(a.Block, b.Block)
	case *Selector:
		b, ok := b.(*Selector)
		if !ok || len(a.Parts) != len(b.Parts) {
			return false
		}
		for i := range a.Parts {
			if !Equal(a.Parts[i], b.Parts[i]) {
				return false
			}
		}
		return true
	case *SelectorPart:
		b, ok := b.(*SelectorPart)
		return ok && a.Kind == b.Kind && a.Value == b.Value
	case *DeclarationBlock:
		b, ok := b.(*DeclarationBlock)
		return ok && equalLists(a.Decls, b.Decls)
	case *Declaration:
		b, ok := b.(*Declaration)
		return ok && a.Property == b.Property && a.Important == b.Important && Equal(a.Value, b.Value)
	case *PropertyValue:
		b, ok := b.(*PropertyValue)
		return ok && equalLists(a.Terms, b.Terms)
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Value == b.Value
	case *Numeric:
		b, ok := b.(*Numeric)
		return ok && a.Value == b.Value && a.Unit == b.Unit
	case *StringLit:
		b, ok := b.(*StringLit)
		return ok && a.Value == b.Value
	case *HexColor:
		b, ok := b.(*HexColor)
		return ok && a.Value == b.Value
	case *Function:
		b, ok := b.(*Function)
		return ok && a.Name == b.Name && equalLists(a.Args, b.Args)
	case *CompositeValue:
		b, ok := b.(*CompositeValue)
		return ok && a.Separator == b.Separator && equalLists(a.Values, b.Values)
	case *ImportRule:
		b, ok := b.(*ImportRule)
		return ok && a.Target == b.Target
	case *CharsetRule:
		b, ok := b.(*CharsetRule)
		return ok && a.Charset == b.Charset
	case *MediaRule:
		b, ok := b.(*MediaRule)
		return ok && a.Query == b.Query && equalLists(a.Body, b.Body)
	case *ConditionalRule:
		b, ok := b.(*ConditionalRule)
		if !ok || len(a.Branches) != len(b.Branches) {
			return false
		}
		for i := range a.Branches {
			if !Equal(a.Branches[i], b.Branches[i]) {
				return false
			}
		}
		return true
	case *ConditionalBranch:
		b, ok := b.(*ConditionalBranch)
		return ok && a.Kind == b.Kind && a.Condition == b.Condition && equalLists(a.Body, b.Body)
	case *DefinitionRule:
		b, ok := b.(*DefinitionRule)
		return ok && a.Name == b.Name && Equal(a.Value, b.Value)
	case *MixinDefinition:
		b, ok := b.(*MixinDefinition)
		if !ok || a.Name != b.Name || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if a.Params[i] != b.Params[i] {
				return false
			}
		}
		return Equal(a.Block, b.Block)
	case *MixinCall:
		b, ok := b.(*MixinCall)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *UnknownAtRule:
		b, ok := b.(*UnknownAtRule)
		return ok && a.Name == b.Name && a.Prelude == b.Prelude && a.HasBlock == b.HasBlock && equalLists(a.Body, b.Body)
	case *Comment:
		b, ok := b.(*Comment)
		return ok && a.Text == b.Text
	}
	return false
}

func equalLists(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
