package lex

import (
	"fmt"

	u "github.com/araddon/gou"
)

var _ = u.EMPTY

// ScanFn tries to consume one lexeme at the current lexer position.  It
// must either advance the lexer past a complete match and return true, or
// leave the position untouched and return false.
type ScanFn func(l *Lexer) bool

// Rule is a single lexical rule of a Dialect.  Rules are evaluated in
// order at each position, first match wins; no longest-match is attempted.
type Rule struct {
	Token   TokenType // Token emitted on match
	Match   string    // literal text; defaults to the Token keyword
	Keyword bool      // literal only matches when followed by a non-word rune
	Scan    ScanFn    // pattern rules (numbers, identities) instead of Match
	Skip    bool      // matched text is discarded, no token emitted
	Unquote bool      // strip the first and last rune from the emitted value
}

func (r *Rule) String() string {
	if r.Scan != nil {
		return fmt.Sprintf("<rule %s scan>", r.Token)
	}
	return fmt.Sprintf("<rule %s %q>", r.Token, r.Match)
}

// Dialect is the ordered rule-set of a filter language.
type Dialect struct {
	Name   string
	Rules  []*Rule
	inited bool
}

// Init fills in defaulted Match text from the token table.  Safe to call
// more than once.
func (m *Dialect) Init() {
	if m.inited {
		return
	}
	m.inited = true
	for _, r := range m.Rules {
		if r.Scan == nil && r.Match == "" && !r.Skip {
			r.Match = r.Token.String()
		}
	}
}

var (
	// FilterDialect is the filter-expression language:
	//
	//    height >= 73 and favorites.color == "green"
	//    not (firstname ~= "o.+") or height < -5
	//
	// Multi character comparison operators are listed before their single
	// character prefixes.  The ternary ? : and the "in" keyword are lexed
	// but no expression production consumes them.  Arithmetic operators are
	// not lexed, except "-" for unary minus.
	FilterDialect *Dialect = &Dialect{
		Name: "filter",
		Rules: []*Rule{
			{Token: TokenLeftParenthesis},
			{Token: TokenRightParenthesis},
			{Token: TokenComma},

			{Token: TokenEqualEqual},
			{Token: TokenNE},
			{Token: TokenGE},
			{Token: TokenLE},
			{Token: TokenRegexNotMatch},
			{Token: TokenRegexMatch},
			{Token: TokenLT},
			{Token: TokenGT},

			{Token: TokenQuestion},
			{Token: TokenColon},

			{Token: TokenLogicAnd, Keyword: true},
			{Token: TokenLogicOr, Keyword: true},
			{Token: TokenNegate, Keyword: true},
			{Token: TokenIN, Keyword: true},

			{Skip: true, Scan: scanWhiteSpace},
			{Token: TokenNumber, Scan: scanNumber},
			{Token: TokenIdentity, Scan: scanIdentity},
			{Token: TokenString, Scan: scanString, Unquote: true},

			{Token: TokenMinus},
		},
	}
)
