package esgen

import (
	"encoding/json"
	"fmt"

	u "github.com/araddon/gou"

	"github.com/araddon/filtres/expr"
	"github.com/araddon/filtres/lex"
)

var _ = u.EMPTY

// scalar returns a JSONable representation of a value node for use in ES
// filters.
//
//    73        -> json.Number("73")
//    - 73      -> json.Number("-73")
//    "green"   -> "green"
//    true      -> true
//    null      -> nil
//
func scalar(node expr.Node) (interface{}, bool) {
	switch n := node.(type) {

	case *expr.StringNode:
		return n.Text, true

	case *expr.NumberNode:
		// keep the literal text, 73.50 stays 73.50
		return json.Number(n.Text), true

	case *expr.UnaryNode:
		if n.Operator.T != lex.TokenMinus {
			return nil, false
		}
		inner, ok := scalar(n.Arg)
		if !ok {
			return nil, false
		}
		num, isNum := inner.(json.Number)
		if !isNum {
			return nil, false
		}
		return json.Number(expr.Negate(string(num))), true

	case *expr.IdentityNode:
		if b, isBool := n.Bool(); isBool {
			return b, true
		}
		if n.IsNull() {
			return nil, true
		}
	}
	return nil, false
}

// fieldName the Elasticsearch field for the left side of a comparison
func fieldName(n expr.Node) (string, error) {
	ident, ok := n.(*expr.IdentityNode)
	if !ok {
		return "", fmt.Errorf("expected a field but found %T (%s)", n, n)
	}
	if !lex.IsValidIdentity(ident.Text) {
		return "", fmt.Errorf("invalid field name %q", ident.Text)
	}
	return ident.Text, nil
}

var rangeOps = map[lex.TokenType]string{
	lex.TokenLT: "lt",
	lex.TokenLE: "lte",
	lex.TokenGT: "gt",
	lex.TokenGE: "gte",
}

// makeRange returns a range filter for Elasticsearch given the 3 nodes that
// make up a comparison.
func makeRange(field string, op lex.TokenType, rhs expr.Node) (interface{}, error) {
	rhsval, ok := scalar(rhs)
	if !ok {
		return nil, fmt.Errorf("unsupported type for comparison: %T (%s)", rhs, rhs)
	}
	return Range(field, rangeOps[op], rhsval), nil
}
