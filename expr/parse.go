package expr

import (
	"fmt"
	"runtime"

	u "github.com/araddon/gou"

	"github.com/araddon/filtres/lex"
)

var (
	_ = u.EMPTY

	// MaxDepth specifies the nesting depth at which we refuse to keep
	// recursing, deeply nested input is rejected rather than exhausting
	// the stack.
	MaxDepth = 1000
)

// SyntaxError the token sequence does not match any grammar production.
type SyntaxError struct {
	Token lex.Token // the offending token
	Pos   int       // byte offset of the offending token
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: %s at line %d column %d, got %s", e.Msg, e.Token.Line, e.Token.Column, e.Token)
}

// TokenPager wraps a Lexer, giving the parser a cursor over the token
// stream.  Tokens are lexed lazily as the cursor moves.
type TokenPager interface {
	Peek() lex.Token
	Next() lex.Token
	Cur() lex.Token
	Lexer() *lex.Lexer
}

// LexTokenPager is the TokenPager over a *lex.Lexer
type LexTokenPager struct {
	done   bool
	tokens []lex.Token // list of all the tokens
	cursor int
	lex    *lex.Lexer
}

func NewLexTokenPager(l *lex.Lexer) *LexTokenPager {
	p := &LexTokenPager{lex: l}
	p.lexNext()
	return p
}

// Next consumes the current token and returns it.
func (m *LexTokenPager) Next() lex.Token {
	tok := m.tokens[m.cursor]
	if m.cursor+1 >= len(m.tokens) {
		m.lexNext()
	}
	if m.cursor+1 < len(m.tokens) {
		m.cursor++
	}
	return tok
}
func (m *LexTokenPager) lexNext() {
	if !m.done {
		tok := m.lex.NextToken()
		if tok.T == lex.TokenEOF || tok.T == lex.TokenError {
			m.done = true
		}
		m.tokens = append(m.tokens, tok)
	}
}

// Cur the current, not yet consumed, token
func (m *LexTokenPager) Cur() lex.Token {
	return m.tokens[m.cursor]
}

// Peek returns but does not consume the token after Cur.
func (m *LexTokenPager) Peek() lex.Token {
	if m.cursor+1 >= len(m.tokens) {
		m.lexNext()
	}
	if m.cursor+1 < len(m.tokens) {
		return m.tokens[m.cursor+1]
	}
	return m.tokens[m.cursor]
}
func (m *LexTokenPager) Lexer() *lex.Lexer {
	return m.lex
}

// Tree is the representation of a single parsed expression
type Tree struct {
	Root       Node // top-level root node of the tree
	TokenPager      // pager for grabbing next tokens
	grammar    *Grammar
	depth      int
}

func NewTree(g *Grammar, pager TokenPager) *Tree {
	return &Tree{grammar: g, TokenPager: pager}
}

// Parsing.

// errorf formats the error and terminates processing.
func (t *Tree) errorf(tok lex.Token, format string, args ...interface{}) {
	t.Root = nil
	panic(&SyntaxError{Token: tok, Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)})
}

// expect verifies the current token and guarantees it has the required type
func (t *Tree) expect(expected lex.TokenType, context string) lex.Token {
	token := t.Cur()
	if token.T != expected {
		t.unexpected(token, fmt.Sprintf("%s, expected %s", context, expected))
	}
	return token
}

// unexpected complains about the token and terminates processing.  A lexer
// failure surfaces as the lexer's own error.
func (t *Tree) unexpected(token lex.Token, context string) {
	if token.T == lex.TokenError {
		if err := t.Lexer().Err(); err != nil {
			t.Root = nil
			panic(err)
		}
	}
	t.errorf(token, "unexpected %s in %s", token.T, context)
}

// recover is the handler that turns panics into returns from the top level of Parse.
func (t *Tree) recover(errp *error) {
	e := recover()
	if e != nil {
		if _, ok := e.(runtime.Error); ok {
			panic(e)
		}
		*errp = e.(error)
		u.Debugf("parse failed: %v", *errp)
	}
}

// BuildTree take the tokens and recursively build into expression tree node
//
//    expression := e EOF
func (t *Tree) BuildTree() (err error) {
	defer t.recover(&err)
	t.Root = t.O(PrecLowest)
	t.expect(lex.TokenEOF, "input")
	return nil
}

func (t *Tree) enter() {
	t.depth++
	if t.depth > MaxDepth {
		t.errorf(t.Cur(), "expression nested deeper than %d", MaxDepth)
	}
}

func (t *Tree) leave() { t.depth-- }

// O parses an operand followed by any run of infix operators binding more
// tightly than minPrec.  Operators of equal precedence are left to the
// caller's loop, which makes every level left associative.
func (t *Tree) O(minPrec int) Node {
	t.enter()
	defer t.leave()
	n := t.F()
	for {
		tok := t.Cur()
		op, ok := t.grammar.Binary(tok.T)
		if !ok || op.Prec <= minPrec {
			return n
		}
		if op.Reserved {
			t.errorf(tok, "unsupported operator %q", tok.V)
		}
		t.Next()
		var rhs Node
		if op.StringArg {
			str := t.expect(lex.TokenString, fmt.Sprintf("right side of %s", tok.V))
			t.Next()
			rhs = NewStringNode(str.V)
		} else {
			rhs = t.O(op.Prec)
		}
		n = NewBinaryNode(tok, n, rhs)
	}
}

// F parses a prefix operator application or a primary.
//
//    F -> "not" F' | "-" F' | "(" O ")" | number | "string" | identity
func (t *Tree) F() Node {
	cur := t.Cur()
	if prec, ok := t.grammar.Prefix(cur.T); ok {
		t.Next()
		return NewUnary(cur, t.O(prec))
	}
	switch cur.T {
	case lex.TokenNumber:
		t.Next()
		return NewNumberNode(cur.V)
	case lex.TokenString:
		t.Next()
		return NewStringNode(cur.V)
	case lex.TokenIdentity:
		t.Next()
		return NewIdentityNode(&cur)
	case lex.TokenLeftParenthesis:
		t.Next() // Consume the Paren
		n := t.O(PrecLowest)
		if bn, ok := n.(*BinaryNode); ok {
			bn.Paren = true
		}
		t.expect(lex.TokenRightParenthesis, "parenthesized expression")
		t.Next()
		return n
	}
	t.unexpected(cur, "input")
	return nil
}

func (t *Tree) String() string {
	if t.Root == nil {
		return ""
	}
	return t.Root.String()
}
