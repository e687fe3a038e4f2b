package gss

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses GSS source texts into a stylesheet tree, collecting
// diagnostics instead of stopping at the first syntax error. A Parser value
// is reusable: all per-invocation state is reset at the start of Parse, so a
// second, unrelated input behaves exactly like a freshly constructed parser.
// It is not safe for concurrent use.
type Parser struct {
	log      *zap.Logger
	failFast bool

	// per-invocation state, reset in reset()
	lx       lexed
	i        int
	em       *ErrorManager
	fatal    *ParseFailure
	poisoned bool
}

// NewParser creates a new GSS parser. In fail-fast mode the first syntax
// diagnostic terminates parsing with a *ParseFailure instead of being
// collected.
func NewParser(log *zap.Logger, failFast bool) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("gss-parser"), failFast: failFast}
}

// Parse parses the given sources in order into one merged tree. Recoverable
// syntax errors are reported to em and parsing continues; the returned error
// is non-nil only for a fail-fast *ParseFailure.
func (p *Parser) Parse(sources []Source, em *ErrorManager) (*Root, error) {
	root := &Root{}
	for _, src := range sources {
		p.reset(src, em)
		p.log.Debug("Parsing source", zap.String("source", src.Name), zap.Int("bytes", len(src.Content)))
		root.Body = append(root.Body, p.parseBody(true)...)
		if p.fatal != nil {
			return root, p.fatal
		}
	}
	if len(root.Body) > 0 {
		root.Location = span(root.Body[0].Loc(), root.Body[len(root.Body)-1].Loc())
	}
	return root, nil
}

func (p *Parser) reset(src Source, em *ErrorManager) {
	p.lx = lex(src.Name, src.Content)
	p.i = 0
	p.em = em
	p.fatal = nil
	p.poisoned = false
}

func (p *Parser) cur() token {
	if p.i >= len(p.lx.tokens) {
		return p.lx.tokens[len(p.lx.tokens)-1]
	}
	return p.lx.tokens[p.i]
}

func (p *Parser) advance() {
	if p.i < len(p.lx.tokens)-1 {
		p.i++
	}
}

func (p *Parser) atEOF() bool { return p.cur().tt == css.ErrorToken }

// consumeAll abandons the rest of the input. Used when recovery hits a
// mismatched bracket and no safe resynchronization point exists.
func (p *Parser) consumeAll() {
	p.i = len(p.lx.tokens) - 1
	p.poisoned = true
}

func (p *Parser) skipSpace() {
	for {
		switch p.cur().tt {
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken:
			p.advance()
		default:
			return
		}
	}
}

// errorAt reports a syntax diagnostic at the given token, reproducing its
// source line with a caret at the token's column. Returns false when
// fail-fast mode converted the diagnostic into a hard stop.
func (p *Parser) errorAt(t token, msg string) bool {
	e := Error{
		Message:    msg,
		Loc:        p.lx.loc(t),
		SourceLine: p.lx.sourceLine(t.pos.Line),
	}
	if p.failFast {
		p.fatal = &ParseFailure{Diag: e}
		p.consumeAll()
		p.poisoned = true
		return false
	}
	p.em.Report(e)
	return true
}

// parseBody parses a list of rules until EOF (top level) or the closing
// brace of the enclosing block. A stray closing brace at top level is
// ignored without producing a node.
func (p *Parser) parseBody(toplevel bool) []Node {
	var body []Node
	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			if !toplevel && !p.poisoned {
				p.errorAt(t, "unclosed block")
			}
			return body
		case css.WhitespaceToken, css.CDOToken, css.CDCToken:
			p.advance()
		case css.CommentToken:
			body = append(body, &Comment{Location: p.lx.loc(t), Text: t.data})
			p.advance()
		case css.SemicolonToken:
			p.advance()
		case css.RightBraceToken:
			p.advance()
			if !toplevel {
				return body
			}
			// stray close brace: ignored, no node
		case css.AtKeywordToken:
			if n := p.parseAtRule(); n != nil {
				body = append(body, n)
			}
		default:
			if n := p.parseRuleset(); n != nil {
				body = append(body, n)
			}
		}
		if p.fatal != nil {
			return body
		}
	}
}

// parseRuleset parses selectors up to '{' and the following declaration
// block.
func (p *Parser) parseRuleset() *Ruleset {
	start := p.cur()
	sels := p.parseSelectors()
	if sels == nil {
		return nil
	}
	block := p.parseDeclarationBlock()
	r := &Ruleset{Location: p.lx.loc(start), Selectors: sels, Block: block}
	if block != nil {
		r.Location = span(r.Location, block.Location)
	}
	return r
}

// parseSelectors parses a comma-separated selector list terminated by '{'.
// Returns nil after reporting and recovering from a malformed selector.
func (p *Parser) parseSelectors() []*Selector {
	var sels []*Selector
	cur := &Selector{}
	pendingWS := false

	addPart := func(t token, kind PartKind, value string) {
		// whitespace right after an explicit combinator is not a descendant
		// combinator
		afterCombinator := len(cur.Parts) > 0 && cur.Parts[len(cur.Parts)-1].Kind == PartCombinator
		if pendingWS && len(cur.Parts) > 0 && kind != PartCombinator && !afterCombinator {
			cur.Parts = append(cur.Parts, &SelectorPart{Kind: PartCombinator, Value: " "})
		}
		pendingWS = false
		part := &SelectorPart{Location: p.lx.loc(t), Kind: kind, Value: value}
		cur.Parts = append(cur.Parts, part)
		if cur.Location.IsUnknown() {
			cur.Location = part.Location
		} else {
			cur.Location = span(cur.Location, part.Location)
		}
	}
	finish := func(t token) bool {
		if len(cur.Parts) == 0 {
			p.errorAt(t, "expected selector")
			return false
		}
		sels = append(sels, cur)
		cur = &Selector{}
		pendingWS = false
		return true
	}

	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			p.errorAt(t, "unexpected end of input in selector")
			return nil
		case css.WhitespaceToken:
			pendingWS = pendingWS || len(cur.Parts) > 0
			p.advance()
		case css.CommentToken:
			p.advance()
		case css.IdentToken:
			addPart(t, PartElement, t.data)
			p.advance()
		case css.HashToken:
			addPart(t, PartID, strings.TrimPrefix(t.data, "#"))
			p.advance()
		case css.DelimToken:
			switch t.data {
			case ".":
				p.advance()
				id := p.cur()
				if id.tt != css.IdentToken {
					p.errorAt(id, "expected class name after '.'")
					p.recoverRule()
					return nil
				}
				addPart(t, PartClass, id.data)
				p.advance()
			case "*":
				addPart(t, PartElement, "*")
				p.advance()
			case ">", "+", "~":
				pendingWS = false
				addPart(t, PartCombinator, t.data)
				p.advance()
			default:
				p.errorAt(t, "unexpected "+strconv.Quote(t.data)+" in selector")
				p.recoverRule()
				return nil
			}
		case css.ColonToken:
			raw, ok := p.parsePseudo()
			if !ok {
				return nil
			}
			addPart(t, PartPseudo, raw)
		case css.LeftBracketToken:
			raw, ok := p.parseAttribute()
			if !ok {
				return nil
			}
			addPart(t, PartAttribute, raw)
		case css.CommaToken:
			if !finish(t) {
				p.recoverRule()
				return nil
			}
			p.advance()
		case css.LeftBraceToken:
			if !finish(t) {
				p.recoverRule()
				return nil
			}
			return sels
		default:
			p.errorAt(t, "unexpected token in selector")
			p.recoverRule()
			return nil
		}
	}
}

// parsePseudo consumes :name, ::name or :fn(...) keeping the raw spelling.
func (p *Parser) parsePseudo() (string, bool) {
	var sb strings.Builder
	sb.WriteString(":")
	p.advance()
	if p.cur().tt == css.ColonToken {
		sb.WriteString(":")
		p.advance()
	}
	t := p.cur()
	switch t.tt {
	case css.IdentToken:
		sb.WriteString(t.data)
		p.advance()
	case css.FunctionToken:
		sb.WriteString(t.data)
		p.advance()
		depth := 1
		for depth > 0 {
			t = p.cur()
			if t.tt == css.ErrorToken {
				p.errorAt(t, "unclosed pseudo-class arguments")
				return "", false
			}
			if t.tt == css.FunctionToken || t.tt == css.LeftParenthesisToken {
				depth++
			}
			if t.tt == css.RightParenthesisToken {
				depth--
			}
			sb.WriteString(t.data)
			p.advance()
		}
	default:
		p.errorAt(t, "expected pseudo-class name")
		p.recoverRule()
		return "", false
	}
	return sb.String(), true
}

// parseAttribute consumes an attribute selector keeping the raw spelling,
// brackets included.
func (p *Parser) parseAttribute() (string, bool) {
	var sb strings.Builder
	for {
		t := p.cur()
		if t.tt == css.ErrorToken {
			p.errorAt(t, "unclosed attribute selector")
			return "", false
		}
		sb.WriteString(t.data)
		p.advance()
		if t.tt == css.RightBracketToken {
			return sb.String(), true
		}
	}
}

// parseDeclarationBlock parses '{ declarations }'. The opening brace is the
// current token.
func (p *Parser) parseDeclarationBlock() *DeclarationBlock {
	open := p.cur()
	block := &DeclarationBlock{Location: p.lx.loc(open)}
	p.advance()
	for {
		p.skipWhitespaceOnly()
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			if !p.poisoned {
				p.errorAt(t, "unclosed declaration block")
			}
			return block
		case css.RightBraceToken:
			block.Location = span(block.Location, p.lx.loc(t))
			p.advance()
			return block
		case css.SemicolonToken:
			p.advance()
		case css.CommentToken:
			block.Decls = append(block.Decls, &Comment{Location: p.lx.loc(t), Text: t.data})
			p.advance()
		case css.AtKeywordToken:
			if strings.EqualFold(t.data, "@mixin") {
				if mc := p.parseMixinCall(); mc != nil {
					block.Decls = append(block.Decls, mc)
				}
			} else {
				p.errorAt(t, "unexpected at-rule in declaration block")
				p.recoverDecl()
			}
		case css.IdentToken, css.CustomPropertyNameToken:
			if d := p.parseDeclaration(); d != nil {
				block.Decls = append(block.Decls, d)
			}
		default:
			p.errorAt(t, "expected declaration")
			p.recoverDecl()
		}
		if p.fatal != nil {
			return block
		}
	}
}

func (p *Parser) skipWhitespaceOnly() {
	for p.cur().tt == css.WhitespaceToken {
		p.advance()
	}
}

// parseDeclaration parses one 'property: value [!important]' declaration.
// On a malformed declaration it reports a diagnostic, resynchronizes at the
// next semicolon of the same block, and returns nil so siblings survive.
func (p *Parser) parseDeclaration() *Declaration {
	prop := p.cur()
	p.advance()
	p.skipWhitespaceOnly()
	if p.cur().tt != css.ColonToken {
		p.errorAt(p.cur(), "expected ':' after property name")
		p.recoverDecl()
		return nil
	}
	p.advance()
	val, important, ok := p.parsePropertyValue()
	if !ok {
		p.recoverDecl()
		return nil
	}
	if p.cur().tt == css.SemicolonToken {
		p.advance()
	}
	d := &Declaration{
		Location:  span(p.lx.loc(prop), val.Location),
		Property:  prop.data,
		Value:     val,
		Important: important,
	}
	return d
}

// parsePropertyValue parses value terms until ';', '}' or EOF. Comma lists
// become a single CompositeValue term.
func (p *Parser) parsePropertyValue() (*PropertyValue, bool, bool) {
	var groups [][]Node
	var terms []Node
	important := false

loop:
	for {
		p.skipWhitespaceOnly()
		t := p.cur()
		switch t.tt {
		case css.SemicolonToken, css.RightBraceToken, css.ErrorToken:
			break loop
		case css.CommentToken:
			p.advance()
		case css.CommaToken:
			if len(terms) == 0 {
				p.errorAt(t, "expected value")
				return nil, false, false
			}
			groups = append(groups, terms)
			terms = nil
			p.advance()
		case css.DelimToken:
			if t.data == "!" {
				p.advance()
				p.skipWhitespaceOnly()
				id := p.cur()
				if id.tt != css.IdentToken || !strings.EqualFold(id.data, "important") {
					p.errorAt(id, "expected 'important' after '!'")
					return nil, false, false
				}
				important = true
				p.advance()
				continue
			}
			term, ok := p.parseTerm()
			if !ok {
				return nil, false, false
			}
			terms = append(terms, term)
		default:
			term, ok := p.parseTerm()
			if !ok {
				return nil, false, false
			}
			terms = append(terms, term)
		}
	}

	if len(terms) == 0 {
		if len(groups) == 0 {
			p.errorAt(p.cur(), "expected value")
			return nil, false, false
		}
		// trailing comma
		p.errorAt(p.cur(), "expected value after ','")
		return nil, false, false
	}

	pv := &PropertyValue{Location: span(terms[0].Loc(), terms[len(terms)-1].Loc())}
	if len(groups) == 0 {
		pv.Terms = terms
		return pv, important, true
	}
	groups = append(groups, terms)
	comp := &CompositeValue{Separator: ","}
	for _, g := range groups {
		if len(g) == 1 {
			comp.Values = append(comp.Values, g[0])
		} else {
			comp.Values = append(comp.Values, &CompositeValue{
				Location:  span(g[0].Loc(), g[len(g)-1].Loc()),
				Separator: " ",
				Values:    g,
			})
		}
	}
	comp.Location = span(comp.Values[0].Loc(), comp.Values[len(comp.Values)-1].Loc())
	pv.Terms = []Node{comp}
	return pv, important, true
}

// parseTerm parses one value term. Reports a diagnostic at the current
// token and returns false when it cannot start a term.
func (p *Parser) parseTerm() (Node, bool) {
	t := p.cur()
	loc := p.lx.loc(t)
	switch t.tt {
	case css.IdentToken:
		p.advance()
		return &Literal{Location: loc, Value: t.data}, true
	case css.NumberToken:
		v, _ := strconv.ParseFloat(t.data, 64)
		p.advance()
		return &Numeric{Location: loc, Raw: t.data, Value: v}, true
	case css.PercentageToken:
		raw := strings.TrimSuffix(t.data, "%")
		v, _ := strconv.ParseFloat(raw, 64)
		p.advance()
		return &Numeric{Location: loc, Raw: raw, Value: v, Unit: "%"}, true
	case css.DimensionToken:
		raw, unit := splitDimension(t.data)
		v, _ := strconv.ParseFloat(raw, 64)
		p.advance()
		return &Numeric{Location: loc, Raw: raw, Value: v, Unit: unit}, true
	case css.StringToken:
		p.advance()
		return &StringLit{Location: loc, Value: t.data}, true
	case css.HashToken:
		p.advance()
		return &HexColor{Location: loc, Value: t.data}, true
	case css.URLToken, css.UnicodeRangeToken:
		p.advance()
		return &Literal{Location: loc, Value: t.data}, true
	case css.FunctionToken:
		return p.parseFunction()
	case css.DelimToken:
		if t.data == "/" {
			p.advance()
			return &Literal{Location: loc, Value: "/"}, true
		}
	}
	p.errorAt(t, "expected value")
	return nil, false
}

// parseFunction parses 'name( args )'. Commas between arguments are kept as
// Literal "," terms so the printers can reproduce separators faithfully.
func (p *Parser) parseFunction() (Node, bool) {
	open := p.cur()
	fn := &Function{
		Location: p.lx.loc(open),
		Name:     strings.TrimSuffix(open.data, "("),
	}
	p.advance()
	for {
		p.skipWhitespaceOnly()
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			p.errorAt(t, "unclosed function "+strconv.Quote(fn.Name))
			return nil, false
		case css.RightParenthesisToken:
			fn.Location = span(fn.Location, p.lx.loc(t))
			p.advance()
			return fn, true
		case css.CommaToken:
			fn.Args = append(fn.Args, &Literal{Location: p.lx.loc(t), Value: ","})
			p.advance()
		case css.DelimToken:
			// calc() operators and slashes pass through as literals
			fn.Args = append(fn.Args, &Literal{Location: p.lx.loc(t), Value: t.data})
			p.advance()
		default:
			term, ok := p.parseTerm()
			if !ok {
				return nil, false
			}
			fn.Args = append(fn.Args, term)
		}
	}
}

// parseAtRule dispatches on the at-keyword. GSS extensions are parsed into
// typed nodes; standard and unknown at-rules are kept generic and shaped by
// the standard at-rule pass.
func (p *Parser) parseAtRule() Node {
	t := p.cur()
	name := strings.ToLower(strings.TrimPrefix(t.data, "@"))
	switch name {
	case "def":
		return p.parseDefinition()
	case "defmixin":
		return p.parseMixinDefinition()
	case "if":
		return p.parseConditional()
	case "elseif", "else":
		p.errorAt(t, "@"+name+" without preceding @if")
		p.recoverRule()
		return nil
	case "mixin":
		p.errorAt(t, "@mixin is only allowed inside a declaration block")
		p.recoverRule()
		return nil
	default:
		return p.parseUnknownAtRule(name)
	}
}

// parseUnknownAtRule keeps the rule generic: raw prelude plus an optional
// block parsed as a rule list.
func (p *Parser) parseUnknownAtRule(name string) Node {
	start := p.cur()
	p.advance()
	rule := &UnknownAtRule{Location: p.lx.loc(start), Name: name}
	var sb strings.Builder
	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			rule.Prelude = strings.TrimSpace(sb.String())
			return rule
		case css.SemicolonToken:
			p.advance()
			rule.Prelude = strings.TrimSpace(sb.String())
			return rule
		case css.LeftBraceToken:
			p.advance()
			rule.Prelude = strings.TrimSpace(sb.String())
			rule.HasBlock = true
			rule.Body = p.parseBody(false)
			return rule
		case css.WhitespaceToken:
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			p.advance()
		case css.CommentToken:
			p.advance()
		default:
			sb.WriteString(t.data)
			p.advance()
		}
	}
}

// parseDefinition parses '@def NAME value;'.
func (p *Parser) parseDefinition() Node {
	start := p.cur()
	p.advance()
	p.skipWhitespaceOnly()
	nameTok := p.cur()
	if nameTok.tt != css.IdentToken {
		p.errorAt(nameTok, "expected constant name after @def")
		p.recoverRule()
		return nil
	}
	p.advance()
	val, _, ok := p.parsePropertyValue()
	if !ok {
		p.recoverRule()
		return nil
	}
	if p.cur().tt == css.SemicolonToken {
		p.advance()
	}
	return &DefinitionRule{
		Location: span(p.lx.loc(start), val.Location),
		Name:     nameTok.data,
		Value:    val,
	}
}

// parseMixinDefinition parses '@defmixin name(p1, p2) { declarations }'.
func (p *Parser) parseMixinDefinition() Node {
	start := p.cur()
	p.advance()
	p.skipWhitespaceOnly()
	nameTok := p.cur()
	if nameTok.tt != css.FunctionToken {
		p.errorAt(nameTok, "expected mixin name and parameter list after @defmixin")
		p.recoverRule()
		return nil
	}
	def := &MixinDefinition{
		Location: p.lx.loc(start),
		Name:     strings.TrimSuffix(nameTok.data, "("),
	}
	p.advance()
	for {
		p.skipWhitespaceOnly()
		t := p.cur()
		switch t.tt {
		case css.IdentToken:
			def.Params = append(def.Params, t.data)
			p.advance()
		case css.CommaToken:
			p.advance()
		case css.RightParenthesisToken:
			p.advance()
			p.skipWhitespaceOnly()
			if p.cur().tt != css.LeftBraceToken {
				p.errorAt(p.cur(), "expected '{' after mixin parameters")
				p.recoverRule()
				return nil
			}
			def.Block = p.parseDeclarationBlock()
			def.Location = span(def.Location, def.Block.Location)
			return def
		default:
			p.errorAt(t, "expected mixin parameter name")
			p.recoverRule()
			return nil
		}
	}
}

// parseMixinCall parses '@mixin name(arg, ...);' inside a declaration block.
func (p *Parser) parseMixinCall() *MixinCall {
	start := p.cur()
	p.advance()
	p.skipWhitespaceOnly()
	nameTok := p.cur()
	if nameTok.tt != css.FunctionToken {
		p.errorAt(nameTok, "expected mixin name and argument list after @mixin")
		p.recoverDecl()
		return nil
	}
	call := &MixinCall{
		Location: p.lx.loc(start),
		Name:     strings.TrimSuffix(nameTok.data, "("),
	}
	p.advance()
	var terms []Node
	flush := func() {
		if len(terms) == 0 {
			return
		}
		call.Args = append(call.Args, &PropertyValue{
			Location: span(terms[0].Loc(), terms[len(terms)-1].Loc()),
			Terms:    terms,
		})
		terms = nil
	}
	for {
		p.skipWhitespaceOnly()
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			p.errorAt(t, "unclosed mixin argument list")
			return nil
		case css.RightParenthesisToken:
			flush()
			call.Location = span(call.Location, p.lx.loc(t))
			p.advance()
			if p.cur().tt == css.SemicolonToken {
				p.advance()
			}
			return call
		case css.CommaToken:
			if len(terms) == 0 {
				p.errorAt(t, "expected mixin argument")
				p.recoverDecl()
				return nil
			}
			flush()
			p.advance()
		default:
			term, ok := p.parseTerm()
			if !ok {
				p.recoverDecl()
				return nil
			}
			terms = append(terms, term)
		}
	}
}

// parseConditional parses a whole '@if { } @elseif { } @else { }' chain into
// one node.
func (p *Parser) parseConditional() Node {
	start := p.cur()
	rule := &ConditionalRule{Location: p.lx.loc(start)}

	branch, ok := p.parseConditionalBranch(BranchIf)
	if !ok {
		return nil
	}
	rule.Branches = append(rule.Branches, branch)

	for {
		mark := p.i
		p.skipSpace()
		t := p.cur()
		if t.tt != css.AtKeywordToken {
			p.i = mark
			break
		}
		switch strings.ToLower(t.data) {
		case "@elseif":
			branch, ok := p.parseConditionalBranch(BranchElseIf)
			if !ok {
				return rule
			}
			rule.Branches = append(rule.Branches, branch)
		case "@else":
			branch, ok := p.parseConditionalBranch(BranchElse)
			if !ok {
				return rule
			}
			rule.Branches = append(rule.Branches, branch)
			rule.Location = span(rule.Location, branch.Location)
			return rule
		default:
			p.i = mark
			return rule
		}
	}
	last := rule.Branches[len(rule.Branches)-1]
	rule.Location = span(rule.Location, last.Location)
	return rule
}

func (p *Parser) parseConditionalBranch(kind BranchKind) (*ConditionalBranch, bool) {
	start := p.cur()
	p.advance()
	b := &ConditionalBranch{Location: p.lx.loc(start), Kind: kind}
	var sb strings.Builder
	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			p.errorAt(t, "unexpected end of input in conditional")
			return nil, false
		case css.LeftBraceToken:
			b.Condition = strings.TrimSpace(sb.String())
			if kind != BranchElse && b.Condition == "" {
				p.errorAt(t, "missing condition")
				p.recoverRule()
				return nil, false
			}
			if kind == BranchElse && b.Condition != "" {
				p.errorAt(t, "@else takes no condition")
				p.recoverRule()
				return nil, false
			}
			p.advance()
			b.Body = p.parseBody(false)
			return b, true
		case css.WhitespaceToken:
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			p.advance()
		case css.SemicolonToken:
			p.errorAt(t, "expected '{' in conditional")
			p.advance()
			return nil, false
		default:
			sb.WriteString(t.data)
			p.advance()
		}
	}
}

// recoverDecl resynchronizes inside a declaration block: it skips forward to
// the next semicolon at the same nesting depth (consuming it) or to the
// block's closing brace (left for the caller). Bracket matching is strict: a
// closer that does not match the innermost opener abandons resynchronization
// and consumes the rest of the input.
func (p *Parser) recoverDecl() {
	var stack []css.TokenType
	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			return
		case css.SemicolonToken:
			p.advance()
			if len(stack) == 0 {
				return
			}
		case css.LeftBraceToken:
			stack = append(stack, css.LeftBraceToken)
			p.advance()
		case css.LeftParenthesisToken:
			stack = append(stack, css.LeftParenthesisToken)
			p.advance()
		case css.FunctionToken:
			stack = append(stack, css.LeftParenthesisToken)
			p.advance()
		case css.LeftBracketToken:
			stack = append(stack, css.LeftBracketToken)
			p.advance()
		case css.RightBraceToken:
			if len(stack) == 0 {
				return // block end, caller resynchronizes here
			}
			if stack[len(stack)-1] != css.LeftBraceToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
		case css.RightParenthesisToken:
			if len(stack) == 0 || stack[len(stack)-1] != css.LeftParenthesisToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
		case css.RightBracketToken:
			if len(stack) == 0 || stack[len(stack)-1] != css.LeftBracketToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
		default:
			p.advance()
		}
	}
}

// recoverRule resynchronizes at rule level: it skips to the next semicolon
// at top depth or past the next balanced block. Nested content of an
// abandoned block is discarded wholesale, never partially recovered.
func (p *Parser) recoverRule() {
	var stack []css.TokenType
	for {
		t := p.cur()
		switch t.tt {
		case css.ErrorToken:
			return
		case css.SemicolonToken:
			p.advance()
			if len(stack) == 0 {
				return
			}
		case css.LeftBraceToken:
			stack = append(stack, css.LeftBraceToken)
			p.advance()
		case css.LeftParenthesisToken:
			stack = append(stack, css.LeftParenthesisToken)
			p.advance()
		case css.FunctionToken:
			stack = append(stack, css.LeftParenthesisToken)
			p.advance()
		case css.LeftBracketToken:
			stack = append(stack, css.LeftBracketToken)
			p.advance()
		case css.RightBraceToken:
			if len(stack) == 0 {
				return // enclosing block's close, caller handles it
			}
			if stack[len(stack)-1] != css.LeftBraceToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
			if len(stack) == 0 {
				return // abandoned block fully skipped
			}
		case css.RightParenthesisToken:
			if len(stack) == 0 || stack[len(stack)-1] != css.LeftParenthesisToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
		case css.RightBracketToken:
			if len(stack) == 0 || stack[len(stack)-1] != css.LeftBracketToken {
				p.consumeAll()
				return
			}
			stack = stack[:len(stack)-1]
			p.advance()
		default:
			p.advance()
		}
	}
}

// splitDimension separates the numeric and unit parts of a dimension token.
func splitDimension(s string) (raw, unit string) {
	end := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' {
			end = i + 1
			continue
		}
		// exponent notation: 1e3px
		if (c == 'e' || c == 'E') && i+1 < len(s) {
			n := s[i+1]
			if n >= '0' && n <= '9' || n == '-' || n == '+' {
				end = i + 2
				i++
				continue
			}
		}
		break
	}
	return s[:end], s[end:]
}
