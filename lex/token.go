package lex

import (
	"fmt"

	u "github.com/araddon/gou"
)

var _ = u.EMPTY

// Tokens ---------------------------------------------------------------------

// TokenType identifies the type of lexical tokens.
type TokenType uint16

// TokenInfo describes a TokenType, its keyword/operator text and its
// binding power when it appears as an operator in an expression.
type TokenInfo struct {
	T           TokenType
	Kw          string
	Description string
}

// Token represents a text string returned from the lexer.
type Token struct {
	T      TokenType // type
	V      string    // value, quotes stripped for strings
	Pos    int       // byte offset of the start of the token in the input
	Line   int       // 1 based line
	Column int       // 1 based column
}

// convert to human readable string
func (t Token) String() string {
	return fmt.Sprintf(`Token{Type:"%v" Value:"%v"}`, t.T.String(), t.V)
}

const (
	// List of all TokenTypes Note we do NOT use IOTA because it is evil
	//  if we change the position (ie, add a token not at end) it will cause any
	//  usage of tokens serialized on disk/database to be invalid

	// Basic grammar items
	TokenNil   TokenType = 0 // not used
	TokenEOF   TokenType = 1 // EOF
	TokenError TokenType = 4 // error occurred; value is text of error

	// Misc
	TokenComma    TokenType = 20 // ,
	TokenColon    TokenType = 22 // :
	TokenQuestion TokenType = 27 // ?

	// Logical Evaluation/expression inputs and operations
	TokenMinus            TokenType = 60 // -
	TokenEqualEqual       TokenType = 68 // ==
	TokenNE               TokenType = 69 // !=
	TokenGE               TokenType = 70 // >=
	TokenLE               TokenType = 71 // <=
	TokenGT               TokenType = 72 // >
	TokenLT               TokenType = 73 // <
	TokenLogicOr          TokenType = 78 // or
	TokenLogicAnd         TokenType = 79 // and
	TokenIN               TokenType = 80 // in
	TokenNegate           TokenType = 82 // not
	TokenLeftParenthesis  TokenType = 83 // (
	TokenRightParenthesis TokenType = 84 // )
	TokenRegexMatch       TokenType = 89 // ~=
	TokenRegexNotMatch    TokenType = 90 // ~!=

	// Value Types
	TokenIdentity TokenType = 190 // field path:  favorites.color
	TokenString   TokenType = 204 // "double quoted"
	TokenNumber   TokenType = 208 // 212.321
)

var (
	// TokenNameMap list of token-name
	TokenNameMap = map[TokenType]*TokenInfo{

		TokenEOF:   {Description: "EOF"},
		TokenError: {Description: "Error"},

		// Misc
		TokenComma:    {Kw: ",", Description: ","},
		TokenColon:    {Kw: ":", Description: ":"},
		TokenQuestion: {Kw: "?", Description: "?"},

		// Logic, Expressions, Operators etc
		TokenMinus:         {Kw: "-", Description: "-"},
		TokenEqualEqual:    {Kw: "==", Description: "=="},
		TokenNE:            {Kw: "!=", Description: "NE"},
		TokenGE:            {Kw: ">=", Description: "GE"},
		TokenLE:            {Kw: "<=", Description: "LE"},
		TokenGT:            {Kw: ">", Description: "GT"},
		TokenLT:            {Kw: "<", Description: "LT"},
		TokenLogicOr:       {Kw: "or", Description: "Or"},
		TokenLogicAnd:      {Kw: "and", Description: "And"},
		TokenIN:            {Kw: "in", Description: "IN"},
		TokenNegate:        {Kw: "not", Description: "NOT"},
		TokenRegexMatch:    {Kw: "~=", Description: "RegexMatch"},
		TokenRegexNotMatch: {Kw: "~!=", Description: "RegexNotMatch"},

		// parens
		TokenLeftParenthesis:  {Kw: "(", Description: "("},
		TokenRightParenthesis: {Kw: ")", Description: ")"},

		// value types
		TokenIdentity: {Description: "identity"},
		TokenString:   {Description: "String"},
		TokenNumber:   {Description: "Number"},
	}
)

func init() {
	LoadTokenInfo()
}

// LoadTokenInfo back-fills each TokenInfo with its own type and a default
// keyword text, then initializes the built in dialect.
func LoadTokenInfo() {
	for tok, ti := range TokenNameMap {
		ti.T = tok
		if ti.Kw == "" {
			ti.Kw = ti.Description
		}
	}
	FilterDialect.Init()
}

// convert to human readable string
func (typ TokenType) String() string {
	s, ok := TokenNameMap[typ]
	if ok {
		return s.Kw
	}
	return "not implemented"
}

// IsComparison is this one of the field-comparing binary operators
//
//    ==, !=, <, <=, >, >=, ~=, ~!=
func (typ TokenType) IsComparison() bool {
	switch typ {
	case TokenEqualEqual, TokenNE, TokenGE, TokenLE, TokenGT, TokenLT,
		TokenRegexMatch, TokenRegexNotMatch:
		return true
	}
	return false
}
