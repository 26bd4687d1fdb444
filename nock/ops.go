package nock

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/PeterReid/hoplight/noun"
)

var one = big.NewInt(1)

// Increment implements `+x` (spec §4.4): 1+x interpreting x as an unsigned
// integer, defined only for atom x.
func Increment(x noun.Noun) (noun.Noun, error) {
	a, ok := x.(noun.Atom)
	if !ok {
		return nil, errors.Wrap(ErrNotAtom, "+ operand")
	}
	sum := new(big.Int).Add(a.AsUint(), one)
	return noun.AtomFromUint(sum), nil
}

// Eq implements `=[a b]` (spec §4.4): 0 if a and b are structurally equal,
// else 1. Defined only when the argument is a cell.
func Eq(pair noun.Noun) (noun.Noun, error) {
	cell, ok := pair.(noun.Cell)
	if !ok {
		return nil, errors.Wrap(ErrNotCell, "= operand")
	}
	return zeroOrOneAtom(noun.Equal(cell.Left, cell.Right)), nil
}

// zeroOrOneAtom renders the Nock 0/1 convention used by `=`, `?`, and the
// opcode 6 truth table: atom 0 when zeroCase holds, atom 1 otherwise.
func zeroOrOneAtom(zeroCase bool) noun.Noun {
	if zeroCase {
		return noun.NewAtom([]byte{0})
	}
	return noun.NewAtom([]byte{1})
}

// isZero reports whether a noun is the atom 0, used to read opcode 6's
// condition back out of an evaluated `b`.
func isZero(n noun.Noun) (bool, error) {
	a, ok := n.(noun.Atom)
	if !ok {
		return false, errors.Wrap(ErrNotAtom, "boolean test")
	}
	return a.AsUint().Sign() == 0, nil
}

// cellTest implements `?x` (spec §4.4): 0 if x is a cell, 1 if x is an atom.
func cellTest(x noun.Noun) noun.Noun {
	return zeroOrOneAtom(noun.IsCell(x))
}
