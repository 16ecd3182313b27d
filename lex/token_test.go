package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	tok := Token{T: TokenRegexNotMatch, V: "~!="}
	assert.Equal(t, `Token{Type:"~!=" Value:"~!="}`, tok.String())

	assert.Equal(t, "and", TokenLogicAnd.String())
	assert.Equal(t, "Number", TokenNumber.String())
	assert.Equal(t, "not implemented", TokenType(9999).String())

	for _, tt := range []TokenType{TokenEqualEqual, TokenNE, TokenLT, TokenLE,
		TokenGT, TokenGE, TokenRegexMatch, TokenRegexNotMatch} {
		assert.True(t, tt.IsComparison(), "%s", tt)
	}
	for _, tt := range []TokenType{TokenLogicAnd, TokenLogicOr, TokenNegate,
		TokenMinus, TokenIN, TokenIdentity} {
		assert.False(t, tt.IsComparison(), "%s", tt)
	}
}

func TestDialectInit(t *testing.T) {
	d := &Dialect{Name: "mini", Rules: []*Rule{
		{Token: TokenLeftParenthesis},
		{Token: TokenLogicOr, Keyword: true},
		{Skip: true, Scan: scanWhiteSpace},
	}}
	d.Init()
	assert.Equal(t, "(", d.Rules[0].Match)
	assert.Equal(t, "or", d.Rules[1].Match)
	assert.Equal(t, "", d.Rules[2].Match)
	// idempotent
	d.Rules[0].Match = "["
	d.Init()
	assert.Equal(t, "[", d.Rules[0].Match)
	assert.Equal(t, `<rule ( "[">`, d.Rules[0].String())
}
