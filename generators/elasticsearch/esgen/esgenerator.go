// Package esgen converts a parsed filter expression into the Elasticsearch
// filter DSL.
package esgen

import (
	u "github.com/araddon/gou"

	"github.com/araddon/filtres/expr"
	"github.com/araddon/filtres/generators/elasticsearch/gentypes"
	"github.com/araddon/filtres/lex"
)

var (
	// MaxDepth specifies the depth at which we are certain the filter generator is in an endless loop
	// This *shouldn't* happen, but is better than a stack overflow
	MaxDepth = 1000

	_ = u.EMPTY
)

// FilterGenerator walks an expression tree building the filter for it.  It
// holds no per-walk state and is safe for concurrent use.
type FilterGenerator struct{}

func NewGenerator() *FilterGenerator {
	return &FilterGenerator{}
}

// Walk the tree returning the filtered query envelope.
func (fg *FilterGenerator) Walk(tree *expr.Tree) (*gentypes.Query, error) {
	if tree == nil || tree.Root == nil {
		return nil, gentypes.Malformedf("", "empty expression")
	}
	f, err := fg.walkExpr(tree.Root, 0)
	if err != nil {
		return nil, err
	}
	return gentypes.NewQuery(f), nil
}

// walkExpr dispatches to node-type-specific methods, node is in a filter
// position.
func (fg *FilterGenerator) walkExpr(node expr.Node, depth int) (interface{}, error) {
	if depth > MaxDepth {
		return nil, gentypes.Malformedf(node.String(), "hit max depth %d on filter generation", MaxDepth)
	}
	switch n := node.(type) {
	case *expr.UnaryNode:
		return fg.unaryExpr(n, depth)
	case *expr.BinaryNode:
		if n.IsComparison() {
			return fg.binaryExpr(n)
		}
		switch n.Operator.T {
		case lex.TokenLogicAnd, lex.TokenLogicOr:
			return fg.booleanExpr(n, depth)
		}
		return nil, gentypes.Malformedf(node.String(), "operator %s can not be used as a filter", n.Operator.V)
	}
	u.Warnf("literal used as filter %s", node)
	return nil, gentypes.Malformedf(node.String(), "%T can not be used as a filter", node)
}

func (fg *FilterGenerator) unaryExpr(node *expr.UnaryNode, depth int) (interface{}, error) {
	switch node.Operator.T {
	case lex.TokenNegate:
		inner, err := fg.walkExpr(node.Arg, depth+1)
		if err != nil {
			return nil, err
		}
		return NotFilter(inner), nil
	}
	return nil, gentypes.Malformedf(node.String(), "unary %s can not be used as a filter", node.Operator.V)
}

// booleanExpr  and/or of two filters.  The left operand of a left-deep
// chain of the same operator (a or b or c ...) stays at the same depth, only
// real nesting counts against MaxDepth.
func (fg *FilterGenerator) booleanExpr(bn *expr.BinaryNode, depth int) (interface{}, error) {
	items := make([]interface{}, 0, len(bn.Args))
	for i, arg := range bn.Args {
		argDepth := depth + 1
		if i == 0 && sameBoolean(bn, arg) {
			argDepth = depth
		}
		it, err := fg.walkExpr(arg, argDepth)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if bn.Operator.T == lex.TokenLogicAnd {
		return AndFilter(items), nil
	}
	return OrFilter(items), nil
}

func sameBoolean(bn *expr.BinaryNode, arg expr.Node) bool {
	child, ok := arg.(*expr.BinaryNode)
	return ok && !child.Paren && child.Operator.T == bn.Operator.T
}

func (fg *FilterGenerator) binaryExpr(node *expr.BinaryNode) (interface{}, error) {
	// Type check binary expression arguments as they must be:
	// Identifier-Operator-Literal
	lhs, err := fieldName(node.Args[0])
	if err != nil {
		return nil, gentypes.Malformed(node.String(), err)
	}

	switch op := node.Operator.T; op {
	case lex.TokenGE, lex.TokenLE, lex.TokenGT, lex.TokenLT:
		f, err := makeRange(lhs, op, node.Args[1])
		if err != nil {
			return nil, gentypes.Malformed(node.String(), err)
		}
		return f, nil

	case lex.TokenEqualEqual, lex.TokenNE:
		rhs, ok := scalar(node.Args[1])
		if !ok {
			return nil, gentypes.Malformedf(node.String(), "unsupported second argument for %s: %T", op, node.Args[1])
		}
		if op == lex.TokenNE {
			return MustNotFilter(Term(lhs, rhs)), nil
		}
		return Term(lhs, rhs), nil

	case lex.TokenRegexMatch, lex.TokenRegexNotMatch:
		pattern, ok := node.Args[1].(*expr.StringNode)
		if !ok {
			return nil, gentypes.Malformedf(node.String(), "regex pattern must be a string: %T", node.Args[1])
		}
		if op == lex.TokenRegexNotMatch {
			return MustNotFilter(Regexp(lhs, pattern.Text)), nil
		}
		return MustFilter(Regexp(lhs, pattern.Text)), nil
	}
	return nil, gentypes.Malformedf(node.String(), "unsupported binary expression: %s", node.Operator.T)
}
