package gss

// Visitor receives every node of a traversal. Enter is called pre-order and
// may return false to skip the node's children; Leave is called post-order.
// The Cursor passed to both callbacks controls the traversal: it can stop it
// early and, for nodes held in mutable containers, remove or replace the
// current node or insert siblings after it. Mutations only affect siblings
// that have not been visited yet.
type Visitor interface {
	Enter(c *Cursor, n Node) bool
	Leave(c *Cursor, n Node)
}

// Cursor is the handle a Visitor uses to mutate the tree mid-traversal.
// Remove, Replace and InsertAfter are valid only while visiting a node held
// in a mutable []Node container (root body, media/conditional bodies,
// declaration-block entries, value term lists); elsewhere they are no-ops
// recorded as unsupported.
type Cursor struct {
	stopped     bool
	parent      Node
	list        *[]Node
	index       int
	removed     bool
	replacement []Node
	inserted    []Node
}

// Stop terminates the whole traversal immediately.
func (c *Cursor) Stop() { c.stopped = true }

// Parent returns the container node of the one being visited, or nil at the
// root. The reference is for navigation only.
func (c *Cursor) Parent() Node { return c.parent }

// Mutable reports whether the current node can be structurally mutated.
func (c *Cursor) Mutable() bool { return c.list != nil }

// Remove detaches the current node. Its children are not visited and Leave
// is not called for it. Passes must not retain references into the removed
// subtree.
func (c *Cursor) Remove() {
	if c.list == nil {
		return
	}
	c.removed = true
	c.replacement = nil
}

// Replace substitutes the current node with the given nodes. The
// replacements become the next nodes visited, in order.
func (c *Cursor) Replace(nodes ...Node) {
	if c.list == nil {
		return
	}
	c.removed = false
	c.replacement = nodes
}

// InsertAfter adds siblings immediately after the current node; they are
// visited in order once the current node is left.
func (c *Cursor) InsertAfter(nodes ...Node) {
	if c.list == nil {
		return
	}
	c.inserted = append(c.inserted, nodes...)
}

type walker struct {
	v       Visitor
	stopped bool
}

// Visit walks the tree depth-first: Enter in pre-order, children in stored
// order, Leave in post-order. The visitor may mutate mutable containers
// through the cursor without corrupting traversal order.
func Visit(root *Root, v Visitor) {
	w := &walker{v: v}
	c := &Cursor{}
	if w.enter(c, root) {
		w.walkList(root, &root.Body)
	}
	if !w.stopped {
		w.v.Leave(c, root)
	}
	w.stopped = w.stopped || c.stopped
}

func (w *walker) enter(c *Cursor, n Node) bool {
	if w.stopped {
		return false
	}
	descend := w.v.Enter(c, n)
	if c.stopped {
		w.stopped = true
		return false
	}
	return descend
}

func (w *walker) leave(c *Cursor, n Node) {
	if w.stopped {
		return
	}
	w.v.Leave(c, n)
	if c.stopped {
		w.stopped = true
	}
}

// walkList drives traversal over a mutable []Node container, applying cursor
// mutations as it goes. Nodes spliced in at or after the current index are
// visited; nodes already left are unaffected.
func (w *walker) walkList(parent Node, list *[]Node) {
	for i := 0; i < len(*list); i++ {
		if w.stopped {
			return
		}
		n := (*list)[i]
		c := &Cursor{parent: parent, list: list, index: i}
		descend := w.enter(c, n)
		if c.removed || c.replacement != nil {
			_, next := w.applyMutation(c, list, i)
			i = next - 1
			continue
		}
		if c.inserted != nil {
			// insertion alone: the current node is still walked, the new
			// siblings are visited right after it
			w.applyMutation(c, list, i)
		}
		if w.stopped {
			return
		}
		if descend {
			w.walkNode(n)
		}
		if w.stopped {
			return
		}
		w.leave(c, n)
		if applied, next := w.applyMutation(c, list, i); applied {
			i = next - 1
		}
	}
}

// applyMutation splices any pending removal/replacement/insertion into the
// container. It returns the index at which iteration should continue.
func (w *walker) applyMutation(c *Cursor, list *[]Node, i int) (bool, int) {
	if !c.removed && c.replacement == nil && c.inserted == nil {
		return false, i
	}
	next := i + 1
	switch {
	case c.removed:
		*list = append((*list)[:i], (*list)[i+1:]...)
		next = i
	case c.replacement != nil:
		rest := append([]Node{}, (*list)[i+1:]...)
		*list = append(append((*list)[:i], c.replacement...), rest...)
		next = i // replacements are not-yet-visited siblings
	}
	if c.inserted != nil {
		at := next
		if c.removed || c.replacement != nil {
			at = i + len(c.replacement)
			if c.removed {
				at = i
			}
		}
		rest := append([]Node{}, (*list)[at:]...)
		*list = append(append((*list)[:at], c.inserted...), rest...)
	}
	c.removed, c.replacement, c.inserted = false, nil, nil
	return true, next
}

// walkNode visits the children of n. Dispatch is a closed type switch over
// the node kinds; containers that passes mutate are []Node and go through
// walkList, the rest are visited with an immutable cursor.
func (w *walker) walkNode(n Node) {
	switch n := n.(type) {
	case *Ruleset:
		for _, s := range n.Selectors {
			if w.stopped {
				return
			}
			c := &Cursor{parent: n}
			if w.enter(c, s) {
				w.walkNode(s)
			}
			w.leave(c, s)
		}
		if n.Block != nil && !w.stopped {
			c := &Cursor{parent: n}
			if w.enter(c, n.Block) {
				w.walkNode(n.Block)
			}
			w.leave(c, n.Block)
		}
	case *Selector:
		for _, p := range n.Parts {
			if w.stopped {
				return
			}
			c := &Cursor{parent: n}
			if w.enter(c, p) {
				// selector parts are leaves
			}
			w.leave(c, p)
		}
	case *DeclarationBlock:
		w.walkList(n, &n.Decls)
	case *Declaration:
		if n.Value != nil {
			c := &Cursor{parent: n}
			if w.enter(c, n.Value) {
				w.walkNode(n.Value)
			}
			w.leave(c, n.Value)
		}
	case *PropertyValue:
		w.walkList(n, &n.Terms)
	case *Function:
		w.walkList(n, &n.Args)
	case *CompositeValue:
		w.walkList(n, &n.Values)
	case *MediaRule:
		w.walkList(n, &n.Body)
	case *UnknownAtRule:
		w.walkList(n, &n.Body)
	case *ConditionalRule:
		for _, b := range n.Branches {
			if w.stopped {
				return
			}
			c := &Cursor{parent: n}
			if w.enter(c, b) {
				w.walkNode(b)
			}
			w.leave(c, b)
		}
	case *ConditionalBranch:
		w.walkList(n, &n.Body)
	case *DefinitionRule:
		if n.Value != nil {
			c := &Cursor{parent: n}
			if w.enter(c, n.Value) {
				w.walkNode(n.Value)
			}
			w.leave(c, n.Value)
		}
	case *MixinDefinition:
		if n.Block != nil {
			c := &Cursor{parent: n}
			if w.enter(c, n.Block) {
				w.walkNode(n.Block)
			}
			w.leave(c, n.Block)
		}
	case *MixinCall:
		for _, a := range n.Args {
			if w.stopped {
				return
			}
			c := &Cursor{parent: n}
			if w.enter(c, a) {
				w.walkNode(a)
			}
			w.leave(c, a)
		}
	}
}

// funcVisitor adapts plain functions to the Visitor interface.
type funcVisitor struct {
	enter func(c *Cursor, n Node) bool
	leave func(c *Cursor, n Node)
}

func (f *funcVisitor) Enter(c *Cursor, n Node) bool {
	if f.enter == nil {
		return true
	}
	return f.enter(c, n)
}

func (f *funcVisitor) Leave(c *Cursor, n Node) {
	if f.leave != nil {
		f.leave(c, n)
	}
}

// VisitFunc walks the tree calling enter/leave; either may be nil.
func VisitFunc(root *Root, enter func(c *Cursor, n Node) bool, leave func(c *Cursor, n Node)) {
	Visit(root, &funcVisitor{enter: enter, leave: leave})
}
