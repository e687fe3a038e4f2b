package gss

// Clone returns a deep copy of a subtree. Passes clone definition and mixin
// templates before splicing them into the tree so no subtree ends up with
// two parents.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *Root:
		return &Root{Location: n.Location, Body: cloneList(n.Body)}
	case *Ruleset:
		out := &Ruleset{Location: n.Location}
		for _, s := range n.Selectors {
			out.Selectors = append(out.Selectors, Clone(s).(*Selector))
		}
		if n.Block != nil {
			out.Block = Clone(n.Block).(*DeclarationBlock)
		}
		return out
	case *Selector:
		out := &Selector{Location: n.Location}
		for _, p := range n.Parts {
			out.Parts = append(out.Parts, Clone(p).(*SelectorPart))
		}
		return out
	case *SelectorPart:
		cp := *n
		return &cp
	case *DeclarationBlock:
		return &DeclarationBlock{Location: n.Location, Decls: cloneList(n.Decls)}
	case *Declaration:
		out := &Declaration{Location: n.Location, Property: n.Property, Important: n.Important}
		if n.Value != nil {
			out.Value = Clone(n.Value).(*PropertyValue)
		}
		return out
	case *PropertyValue:
		return &PropertyValue{Location: n.Location, Terms: cloneList(n.Terms)}
	case *Literal:
		cp := *n
		return &cp
	case *Numeric:
		cp := *n
		return &cp
	case *StringLit:
		cp := *n
		return &cp
	case *HexColor:
		cp := *n
		return &cp
	case *Function:
		return &Function{Location: n.Location, Name: n.Name, Args: cloneList(n.Args)}
	case *CompositeValue:
		return &CompositeValue{Location: n.Location, Separator: n.Separator, Values: cloneList(n.Values)}
	case *ImportRule:
		cp := *n
		return &cp
	case *CharsetRule:
		cp := *n
		return &cp
	case *MediaRule:
		return &MediaRule{Location: n.Location, Query: n.Query, Body: cloneList(n.Body)}
	case *ConditionalRule:
		out := &ConditionalRule{Location: n.Location}
		for _, b := range n.Branches {
			out.Branches = append(out.Branches, Clone(b).(*ConditionalBranch))
		}
		return out
	case *ConditionalBranch:
		return &ConditionalBranch{Location: n.Location, Kind: n.Kind, Condition: n.Condition, Body: cloneList(n.Body)}
	case *DefinitionRule:
		out := &DefinitionRule{Location: n.Location, Name: n.Name}
		if n.Value != nil {
			out.Value = Clone(n.Value).(*PropertyValue)
		}
		return out
	case *MixinDefinition:
		out := &MixinDefinition{Location: n.Location, Name: n.Name, Params: append([]string(nil), n.Params...)}
		if n.Block != nil {
			out.Block = Clone(n.Block).(*DeclarationBlock)
		}
		return out
	case *MixinCall:
		out := &MixinCall{Location: n.Location, Name: n.Name}
		for _, a := range n.Args {
			out.Args = append(out.Args, Clone(a).(*PropertyValue))
		}
		return out
	case *UnknownAtRule:
		return &UnknownAtRule{Location: n.Location, Name: n.Name, Prelude: n.Prelude, HasBlock: n.HasBlock, Body: cloneList(n.Body)}
	case *Comment:
		cp := *n
		return &cp
	}
	return nil
}

func cloneList(list []Node) []Node {
	if list == nil {
		return nil
	}
	out := make([]Node, len(list))
	for i, n := range list {
		out[i] = Clone(n)
	}
	return out
}
