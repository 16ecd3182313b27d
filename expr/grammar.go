package expr

import (
	u "github.com/araddon/gou"

	"github.com/araddon/filtres/lex"
)

var _ = u.EMPTY

/*

Operator Precedence, lowest binding first.  Every binary level is
left associative.

  1  or
  2  and
  3  in                    reserved, no production consumes it
  4  ==  !=
  5  <  <=  >  >=
  6  ~=  ~!=               right side must be a "string" literal
  7  not                   prefix
  8  -                     prefix, unary minus

  ( e ) and the literals (number, "string", identity) are primaries.

A prefix operator's operand is parsed at the operator's own level, so the
operator grabs only a primary or another prefix operator:

  not x == 1      ->   (not x) == 1
  not (x == 1)    ->   not (x == 1)

*/

// Precedence levels
const (
	PrecLowest     = 0
	PrecOr         = 1
	PrecAnd        = 2
	PrecIn         = 3
	PrecEquality   = 4
	PrecRelational = 5
	PrecRegex      = 6
	PrecNot        = 7
	PrecUnaryMinus = 8
)

// BinaryOp describes an infix operator of the grammar.
type BinaryOp struct {
	Prec      int
	Reserved  bool // has a precedence slot but no production
	StringArg bool // right operand must be a string literal token
}

// Grammar is the operator table of a filter language plus the dialect used
// to lex it.  Build once with NewGrammar, it is read-only afterwards and
// safe for concurrent Parse calls.
type Grammar struct {
	Dialect *lex.Dialect
	binary  map[lex.TokenType]BinaryOp
	prefix  map[lex.TokenType]int
}

// NewGrammar build the precedence tables for given dialect.
func NewGrammar(d *lex.Dialect) *Grammar {
	d.Init()
	g := &Grammar{
		Dialect: d,
		binary: map[lex.TokenType]BinaryOp{
			lex.TokenLogicOr:       {Prec: PrecOr},
			lex.TokenLogicAnd:      {Prec: PrecAnd},
			lex.TokenIN:            {Prec: PrecIn, Reserved: true},
			lex.TokenEqualEqual:    {Prec: PrecEquality},
			lex.TokenNE:            {Prec: PrecEquality},
			lex.TokenLT:            {Prec: PrecRelational},
			lex.TokenLE:            {Prec: PrecRelational},
			lex.TokenGT:            {Prec: PrecRelational},
			lex.TokenGE:            {Prec: PrecRelational},
			lex.TokenRegexMatch:    {Prec: PrecRegex, StringArg: true},
			lex.TokenRegexNotMatch: {Prec: PrecRegex, StringArg: true},
		},
		prefix: map[lex.TokenType]int{
			lex.TokenNegate: PrecNot,
			lex.TokenMinus:  PrecUnaryMinus,
		},
	}
	u.Debugf("built grammar for dialect %q: %d binary, %d prefix operators", d.Name, len(g.binary), len(g.prefix))
	return g
}

// Binary looks up an infix operator.
func (g *Grammar) Binary(t lex.TokenType) (BinaryOp, bool) {
	op, ok := g.binary[t]
	return op, ok
}

// Prefix looks up the precedence of a prefix operator.
func (g *Grammar) Prefix(t lex.TokenType) (int, bool) {
	p, ok := g.prefix[t]
	return p, ok
}

// Parse a single filter Expression, returning a Tree
//
//    g.Parse(`height >= 73 and favorites.color == "green"`)
//
func (g *Grammar) Parse(expressionText string) (*Tree, error) {
	l := lex.NewLexer(expressionText, g.Dialect)
	t := NewTree(g, NewLexTokenPager(l))
	err := t.BuildTree()
	if err != nil {
		return nil, err
	}
	return t, nil
}
