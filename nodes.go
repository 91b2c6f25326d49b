package arith

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The set of node
// kinds is closed: the parser has no way to build anything but a literal or a
// whitelisted operator.
type node struct {
	kind nodeKind

	// name is the literal text of a nodeNum.
	name string
	// pos is the column of the literal or operator token.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // literal

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, true div by right
	nodeMod // evaluate left, floor mod by right
	nodePow // evaluate left, exp by right
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

// leftassoc reports whether k is a left-associative binary operation.
func (k nodeKind) leftassoc() bool {
	switch k {
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod:
		return true
	}
	return false
}

// symbol returns the source text of an operator node kind.
func (k nodeKind) symbol() string {
	switch k {
	case nodeNeg, nodeSub:
		return "-"
	case nodeNop, nodeAdd:
		return "+"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "**"
	}
	return ""
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodeNeg, nodeNop:
		b.WriteString(n.kind.symbol())
		n.left.fmt(b, !square)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(n.kind.symbol())
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
