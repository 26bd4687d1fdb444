package nock

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/PeterReid/hoplight/noun"
)

// Axis implements the tree-axis operator `/[n x]` (spec §4.4):
//
//	/[1 x]       = x
//	/[2 [l r]]   = l
//	/[3 [l r]]   = r
//	/[n x]       = /[2 /[n/2 x]]     for even n > 2
//	/[n x]       = /[3 /[(n-1)/2 x]] for odd n > 3
//
// Rather than literally recursing through that halving definition, this
// walks x directly using n's binary representation: after the leading 1
// bit, each remaining bit (most significant first) selects left (0) or
// right (1). The two formulations select the same path; the direct walk
// avoids a call per bit.
func Axis(n *big.Int, x noun.Noun) (noun.Noun, error) {
	if n.Sign() <= 0 {
		return nil, ErrAxisZero
	}
	cur := x
	for i := n.BitLen() - 2; i >= 0; i-- {
		cell, ok := cur.(noun.Cell)
		if !ok {
			return nil, errors.Wrapf(ErrAxisIntoAtom, "axis %s", n)
		}
		if n.Bit(i) == 0 {
			cur = cell.Left
		} else {
			cur = cell.Right
		}
	}
	return cur, nil
}
