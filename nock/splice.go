package nock

import (
	"github.com/pkg/errors"

	"github.com/PeterReid/hoplight/noun"
)

// Flatten implements `_x` (spec §4.4): an atom's bytes, or the concatenation
// of a cell's flattened children. Traversal uses an explicit stack rather
// than native recursion so that deeply nested list-shaped nouns (the common
// case for byte buffers) don't grow the Go call stack (spec §4.4
// "Recursion discipline"; pattern follows the teacher's containerStack
// LIFO walk in encoding/atom/binary.go).
func Flatten(x noun.Noun) []byte {
	var out []byte
	// Stack of pending right-hand nouns still to visit: at each cell we
	// push the *right* child and immediately continue into left; once left
	// bottoms out at an atom we pop the most recently pushed right child,
	// which yields left-to-right concatenation order.
	var pending []noun.Noun
	cur := x
	for {
		switch v := cur.(type) {
		case noun.Atom:
			out = append(out, v.Bytes()...)
			if len(pending) == 0 {
				return out
			}
			cur = pending[len(pending)-1]
			pending = pending[:len(pending)-1]
		case noun.Cell:
			pending = append(pending, v.Right)
			cur = v.Left
		default:
			panic("nock: Flatten called on unrecognized Noun implementation")
		}
	}
}

// splitBuf implements the shared recursion behind `^` (spec §4.4): buf is
// the atom acting as a byte buffer, shape is the second argument of `^`
// (an atom length, or a cell of two shapes to apply in sequence). It
// returns the shaped result and the unconsumed tail of buf.
func splitBuf(buf noun.Atom, shape noun.Noun) (result noun.Noun, tail noun.Atom, err error) {
	switch s := shape.(type) {
	case noun.Atom:
		n := int(s.AsUint().Int64())
		bufBytes := buf.Bytes()
		if n > len(bufBytes) {
			return nil, noun.Atom{}, errors.Wrapf(ErrSpliceLengthExceedsBuffer, "need %d bytes, have %d", n, len(bufBytes))
		}
		prefix := noun.NewAtom(bufBytes[:n])
		rest := noun.NewAtom(bufBytes[n:])
		return prefix, rest, nil
	case noun.Cell:
		x, tail1, err := splitBuf(buf, s.Left)
		if err != nil {
			return nil, noun.Atom{}, err
		}
		y, tail2, err := splitBuf(tail1, s.Right)
		if err != nil {
			return nil, noun.Atom{}, err
		}
		return noun.NewCell(x, y), tail2, nil
	default:
		panic("nock: splitBuf called on unrecognized Noun implementation")
	}
}

// Split implements `^[a b]` (spec §4.4): a must be an atom acting as a byte
// buffer; b is the shape (an atom length, or a nested cell of shapes).
// Returns [result tail] conceptually as its two return values.
func Split(a noun.Noun, shape noun.Noun) (result noun.Noun, tail noun.Noun, err error) {
	atomA, ok := a.(noun.Atom)
	if !ok {
		return nil, nil, errors.Wrap(ErrNotAtom, "^ buffer operand")
	}
	result, tailAtom, err := splitBuf(atomA, shape)
	if err != nil {
		return nil, nil, err
	}
	return result, tailAtom, nil
}

// Splice implements `@[a b]` (spec §4.4): flatten a to bytes, shape the
// flattened buffer by b, and discard the trailing remainder.
func Splice(a noun.Noun, shape noun.Noun) (noun.Noun, error) {
	flat := noun.NewAtom(Flatten(a))
	result, _, err := splitBuf(flat, shape)
	if err != nil {
		return nil, err
	}
	return result, nil
}
