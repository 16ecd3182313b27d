package esgen

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"strings"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araddon/filtres/expr"
	"github.com/araddon/filtres/generators/elasticsearch/gentypes"
	"github.com/araddon/filtres/lex"
)

var (
	VerboseTests *bool = flag.Bool("vv", false, "Verbose Logging?")

	grammar *expr.Grammar
)

func TestMain(m *testing.M) {
	flag.Parse()
	if *VerboseTests {
		u.SetupLogging("debug")
		u.SetColorOutput()
	}
	grammar = expr.NewGrammar(lex.FilterDialect)
	os.Exit(m.Run())
}

type genTest struct {
	qlText string
	filter string // expected root filter json
}

var genTests = []genTest{
	{`height == 73`, `{"term":{"height":73}}`},
	{`height != 73`, `{"bool":{"must_not":{"term":{"height":73}}}}`},
	{`height < 73`, `{"range":{"height":{"lt":73}}}`},
	{`height <= 73`, `{"range":{"height":{"lte":73}}}`},
	{`height > 73`, `{"range":{"height":{"gt":73}}}`},
	{`height >= 73`, `{"range":{"height":{"gte":73}}}`},
	{`firstname ~= "o.+"`, `{"bool":{"must":{"regexp":{"firstname":"o.+"}}}}`},
	{`firstname ~!= "o.+"`, `{"bool":{"must_not":{"regexp":{"firstname":"o.+"}}}}`},
	{`favorites.color == "green"`, `{"term":{"favorites.color":"green"}}`},
	{`height > -5.5`, `{"range":{"height":{"gt":-5.5}}}`},
	{`height > - 5`, `{"range":{"height":{"gt":-5}}}`},
	{`height > --5`, `{"range":{"height":{"gt":5}}}`},
	{`active == true`, `{"term":{"active":true}}`},
	{`active != false`, `{"bool":{"must_not":{"term":{"active":false}}}}`},
	{`deleted == null`, `{"term":{"deleted":null}}`},
	{`not (x == 1)`, `{"bool":{"must_not":[{"term":{"x":1}}]}}`},
	{`not not x == 1 == 2`, ``}, // (not not x) == 1, field position holds a unary
	{`a == 1 and b == 2`, `{"bool":{"must":[{"term":{"a":1}},{"term":{"b":2}}]}}`},
	{`a == 1 or b == 2`, `{"bool":{"should":[{"term":{"a":1}},{"term":{"b":2}}]}}`},
	{`a == 1 and b == 2 or c == 3`,
		`{"bool":{"should":[{"bool":{"must":[{"term":{"a":1}},{"term":{"b":2}}]}},{"term":{"c":3}}]}}`},
	{`a == 1 and (b == 2 or c == 3)`,
		`{"bool":{"must":[{"term":{"a":1}},{"bool":{"should":[{"term":{"b":2}},{"term":{"c":3}}]}}]}}`},
	{`not (height < 72 or height > 74) and firstname ~= "a.raham"`,
		`{"bool":{"must":[
			{"bool":{"must_not":[{"bool":{"should":[{"range":{"height":{"lt":72}}},{"range":{"height":{"gt":74}}}]}}]}},
			{"bool":{"must":{"regexp":{"firstname":"a.raham"}}}}
		]}}`},
	// literal text is kept
	{`price == 73.50`, `{"term":{"price":73.50}}`},
	{`zip == 007`, ``}, // 007 is not a valid json number
}

func walk(t *testing.T, qlText string) (*gentypes.Query, error) {
	tree, err := grammar.Parse(qlText)
	require.NoError(t, err, qlText)
	return NewGenerator().Walk(tree)
}

func TestGenerateFilters(t *testing.T) {
	for _, gt := range genTests {
		q, err := walk(t, gt.qlText)
		if gt.filter == "" {
			if err == nil {
				// shape is fine but the number text is not valid json
				_, err = json.Marshal(q)
			}
			assert.Error(t, err, gt.qlText)
			continue
		}
		require.NoError(t, err, gt.qlText)
		by, err := json.Marshal(q.Filter())
		require.NoError(t, err, gt.qlText)
		assert.JSONEq(t, gt.filter, string(by), gt.qlText)

		by, err = json.Marshal(q)
		require.NoError(t, err)
		assert.JSONEq(t, `{"query":{"filtered":{"filter":[`+gt.filter+`]}}}`, string(by), gt.qlText)
	}
}

func TestGenerateMalformed(t *testing.T) {
	malformed := []string{
		`(a and b) == 1`,
		`"a" == 1`,
		`x == y`,
		`x == "a" == "b"`,
		`x < -y`,
		`x == -"a"`,
		`x == not y`,
		`73`,
		`"green"`,
		`height`,
		`-3`,
		`a and b`,
		`not x`,
		`x == 1 or 2`,
		`3 ~= "x"`,
	}
	for _, qlText := range malformed {
		_, err := walk(t, qlText)
		require.Error(t, err, qlText)
		var me *gentypes.MalformedOutputError
		assert.True(t, errors.As(err, &me), "%s %T", qlText, err)
	}

	_, err := NewGenerator().Walk(&expr.Tree{})
	var me *gentypes.MalformedOutputError
	assert.True(t, errors.As(err, &me))

	// reserved operator built by hand, the parser never produces it
	in := expr.NewBinaryNode(lex.Token{T: lex.TokenIN, V: "in"},
		&expr.IdentityNode{Text: "x"}, &expr.NumberNode{Text: "1"})
	_, err = NewGenerator().Walk(&expr.Tree{Root: in})
	assert.True(t, errors.As(err, &me), "%T", err)

	// field names must be valid identities
	bad := expr.NewBinaryNode(lex.Token{T: lex.TokenEqualEqual, V: "=="},
		&expr.IdentityNode{Text: "first name"}, &expr.NumberNode{Text: "1"})
	_, err = NewGenerator().Walk(&expr.Tree{Root: bad})
	require.Error(t, err)
	assert.True(t, errors.As(err, &me), "%T", err)
	assert.Contains(t, err.Error(), "invalid field name")
}

func TestGenerateLongChain(t *testing.T) {
	terms := make([]string, MaxDepth+100)
	for i := range terms {
		terms[i] = "id == 1"
	}
	for _, op := range []string{" or ", " and "} {
		qlText := strings.Join(terms, op)
		q, err := walk(t, qlText)
		require.NoError(t, err, op)
		_, err = json.Marshal(q)
		require.NoError(t, err, op)
	}

	// grouping a chain is still real nesting
	qlText := strings.Repeat("(", 20) + strings.Join(terms[:30], " or ") + strings.Repeat(")", 20)
	_, err := walk(t, qlText)
	require.NoError(t, err)
}

func TestGenerateMaxDepth(t *testing.T) {
	tok := lex.Token{T: lex.TokenNegate, V: "not"}
	var n expr.Node = expr.NewBinaryNode(lex.Token{T: lex.TokenEqualEqual, V: "=="},
		&expr.IdentityNode{Text: "x"}, &expr.NumberNode{Text: "1"})
	for i := 0; i < MaxDepth+10; i++ {
		n = expr.NewUnary(tok, n)
	}
	_, err := NewGenerator().Walk(&expr.Tree{Root: n})
	require.Error(t, err)
	var me *gentypes.MalformedOutputError
	assert.True(t, errors.As(err, &me))
}

func TestScalar(t *testing.T) {
	v, ok := scalar(&expr.NumberNode{Text: "12.50"})
	assert.True(t, ok)
	assert.Equal(t, json.Number("12.50"), v)

	v, ok = scalar(expr.NewUnary(lex.Token{T: lex.TokenMinus, V: "-"}, &expr.NumberNode{Text: "3"}))
	assert.True(t, ok)
	assert.Equal(t, json.Number("-3"), v)

	v, ok = scalar(&expr.IdentityNode{Text: "null"})
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = scalar(&expr.IdentityNode{Text: "height"})
	assert.False(t, ok)
	_, ok = scalar(expr.NewUnary(lex.Token{T: lex.TokenNegate, V: "not"}, &expr.NumberNode{Text: "3"}))
	assert.False(t, ok)
}
