package expr

import (
	"fmt"
	"strings"

	u "github.com/araddon/gou"

	"github.com/araddon/filtres/lex"
)

var _ = u.EMPTY

type (
	// A Node is an element in the expression tree, implemented
	// by different types (string, number, identity, binary, urnary)
	//
	//  - filter expressions have no statements or function calls,
	//    just literals and operators
	Node interface {
		// string representation of Node, AST parseable back to itself
		String() string
	}

	// IdentityNode is a field path, used as the key of a comparison
	//
	//    favorites.color
	IdentityNode struct {
		Text string
	}

	// StringNode holds a value literal, quotes not included
	StringNode struct {
		Text string
	}

	// NumberNode holds a number literal as it was written, no sign.
	NumberNode struct {
		Text string
	}

	// Binary node is   x op y, two nodes (left, right) and an operator
	// operators can be a variety of:
	//    and, or, ==, !=, <, <=, >, >=, ~=, ~!=
	// Also, parenthesis may wrap these
	BinaryNode struct {
		Paren    bool
		Args     [2]Node
		Operator lex.Token
	}

	// UnaryNode applies a prefix operator to a single node argument
	//
	//   not <expression>
	//   -<expression>
	UnaryNode struct {
		Arg      Node
		Operator lex.Token
	}
)

// NewIdentityNode new field path node
func NewIdentityNode(tok *lex.Token) *IdentityNode {
	return &IdentityNode{Text: tok.V}
}
func (m *IdentityNode) String() string { return m.Text }

// Bool is this identity one of the bare json keywords true/false
func (m *IdentityNode) Bool() (bool, bool) {
	switch m.Text {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// IsNull is this identity the bare json keyword null
func (m *IdentityNode) IsNull() bool { return m.Text == "null" }

// NewStringNode new string literal node, text without quotes
func NewStringNode(text string) *StringNode {
	return &StringNode{Text: text}
}
func (m *StringNode) String() string { return `"` + m.Text + `"` }

// NewNumberNode new number literal node
func NewNumberNode(text string) *NumberNode {
	return &NumberNode{Text: text}
}
func (m *NumberNode) String() string { return m.Text }

// NewBinaryNode Create a Binary node
//
//   @operator = * + - %/ / && || = ==
//   @operator =  and, or, ==, !=, <, <=, >, >=, ~=, ~!=
//   @lhArg, rhArg the left, right side of binary
func NewBinaryNode(operator lex.Token, lhArg, rhArg Node) *BinaryNode {
	return &BinaryNode{Args: [2]Node{lhArg, rhArg}, Operator: operator}
}

func (m *BinaryNode) String() string {
	s := fmt.Sprintf("%s %s %s", m.Args[0], m.Operator.V, m.Args[1])
	if m.Paren {
		return "(" + s + ")"
	}
	return s
}

// IsComparison is the operator a field comparison (as opposed to and/or)
func (m *BinaryNode) IsComparison() bool { return m.Operator.T.IsComparison() }

// NewUnary Create a unary node
func NewUnary(operator lex.Token, arg Node) *UnaryNode {
	return &UnaryNode{Arg: arg, Operator: operator}
}

func (m *UnaryNode) String() string {
	switch m.Operator.T {
	case lex.TokenNegate:
		return "not " + m.Arg.String()
	case lex.TokenMinus:
		return "-" + m.Arg.String()
	}
	return m.Operator.V + " " + m.Arg.String()
}

// Negate flips the sign of a numeric literal's text.
//
//    3  -> -3
//    -3 -> 3
func Negate(numText string) string {
	if strings.HasPrefix(numText, "-") {
		return numText[1:]
	}
	return "-" + numText
}
