package gss

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// token is one lexed token with its resolved source position. The whole
// input is tokenized up front; the parser then works over the slice with an
// index, which keeps arbitrary lookahead and resynchronization cheap.
type token struct {
	tt   css.TokenType
	data string
	pos  Position
}

// lexed is the tokenized form of one source text.
type lexed struct {
	name   string
	tokens []token
	lines  []string
}

// lex tokenizes src with the tdewolff CSS lexer, attaching 1-based
// line/column and byte offset to every token. The token slice always ends
// with a zero-width EOF sentinel (ErrorToken).
func lex(name, src string) lexed {
	out := lexed{
		name:  name,
		lines: strings.Split(src, "\n"),
	}
	l := css.NewLexer(parse.NewInputString(src))
	line, col, off := 1, 1, 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			out.tokens = append(out.tokens, token{
				tt:  css.ErrorToken,
				pos: Position{Line: line, Column: col, Offset: off},
			})
			return out
		}
		out.tokens = append(out.tokens, token{
			tt:   tt,
			data: string(data),
			pos:  Position{Line: line, Column: col, Offset: off},
		})
		for _, b := range data {
			if b == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		off += len(data)
	}
}

// loc builds the Location of a single token.
func (l *lexed) loc(t token) Location {
	end := t.pos
	for i := 0; i < len(t.data); i++ {
		if t.data[i] == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}
	end.Offset = t.pos.Offset + len(t.data)
	return Location{File: l.name, Begin: t.pos, End: end}
}

// sourceLine returns the physical line of text for a 1-based line number.
func (l *lexed) sourceLine(line int) string {
	if line < 1 || line > len(l.lines) {
		return ""
	}
	return strings.TrimRight(l.lines[line-1], "\r")
}
