package nock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeterReid/hoplight/noun"
)

func at(b byte) noun.Noun { return noun.NewAtom([]byte{b}) }

func f(parts ...noun.Noun) noun.Noun {
	if len(parts) == 1 {
		return parts[0]
	}
	return noun.NewCell(parts[0], f(parts[1:]...))
}

func newEval(t *testing.T) *Evaluator {
	t.Helper()
	e, err := New(WithEntropySource(NewDeterministicEntropy(1)))
	require.NoError(t, err)
	return e
}

func TestQuoteLaw(t *testing.T) {
	e := newEval(t)
	// *[a 1 b] = b, for all a, b.
	got, err := e.Eval(at(9), f(at(1), at(1), at(42)))
	require.NoError(t, err)
	assert.True(t, noun.Equal(f(at(1), at(42)), got))
}

func TestAxisOneLaw(t *testing.T) {
	e := newEval(t)
	// *[a 0 1] = a
	subject := noun.NewCell(at(1), noun.NewCell(at(2), at(3)))
	got, err := e.Eval(subject, f(at(0), at(1)))
	require.NoError(t, err)
	assert.True(t, noun.Equal(subject, got))
}

func TestIncrementLiteralLaw(t *testing.T) {
	e := newEval(t)
	// *[a 4 1 n] = n+1
	got, err := e.Eval(at(0), f(at(4), at(1), at(40)))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(41), got))
}

func TestOpcode6TruthTable(t *testing.T) {
	e := newEval(t)
	cTrue := f(at(1), at(111))
	dFalse := f(at(1), at(222))

	got, err := e.Eval(at(0), f(at(6), f(at(1), at(0)), cTrue, dFalse))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(111), got))

	got, err = e.Eval(at(0), f(at(6), f(at(1), at(1)), cTrue, dFalse))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(222), got))

	_, err = e.Eval(at(0), f(at(6), f(at(1), at(9)), cTrue, dFalse))
	assert.Error(t, err, "a non-0/1 condition must fail")
}

func TestComposeOpcode7(t *testing.T) {
	e := newEval(t)
	// *[a 7 b c] = *[*[a b] c]: take axis 3 of the subject, then increment it.
	subject := noun.NewCell(at(5), at(6))
	formula := f(at(7), f(at(0), at(3)), f(at(4), at(0), at(1))) // axis3 then increment
	got, err := e.Eval(subject, formula)
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(7), got))
}

func TestPushOpcode8(t *testing.T) {
	e := newEval(t)
	// *[a 8 b c]: subject becomes [*[a b] a]; axis 2 recovers the pushed value.
	subject := at(9)
	formula := f(at(8), f(at(4), at(0), at(1)), f(at(0), at(2)))
	got, err := e.Eval(subject, formula)
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(10), got))
}

func TestAutocons(t *testing.T) {
	e := newEval(t)
	subject := noun.NewCell(at(7), at(8))
	formula := noun.NewCell(f(at(0), at(2)), f(at(0), at(3)))
	got, err := e.Eval(subject, formula)
	require.NoError(t, err)
	assert.True(t, noun.Equal(subject, got))
}

func TestCellTestOpcode3(t *testing.T) {
	e := newEval(t)
	got, err := e.Eval(noun.NewCell(at(1), at(2)), f(at(3), f(at(0), at(1))))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(0), got))

	got, err = e.Eval(at(5), f(at(3), f(at(0), at(1))))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(1), got))
}

func TestEqualityOpcode5(t *testing.T) {
	e := newEval(t)
	subject := noun.NewCell(at(3), at(3))
	got, err := e.Eval(subject, f(at(5), f(at(0), at(1))))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(0), got))
}

func TestHashCacheOpcodes10Through12(t *testing.T) {
	e := newEval(t)
	v := at(77)

	h, err := e.Eval(at(0), f(at(10), f(at(1), v)))
	require.NoError(t, err)
	assert.Equal(t, 8, h.(noun.Atom).Len())

	_, err = e.Eval(at(0), f(at(11), f(at(1), v)))
	require.NoError(t, err)

	got, err := e.Eval(at(0), f(at(12), f(at(1), v)))
	require.NoError(t, err)
	cell, ok := got.(noun.Cell)
	require.True(t, ok)
	assert.True(t, noun.Equal(at(0), cell.Left))
	assert.True(t, noun.Equal(v, cell.Right))

	miss, err := e.Eval(at(0), f(at(12), f(at(1), at(78))))
	require.NoError(t, err)
	assert.True(t, noun.Equal(at(1), miss))
}

func TestKeyCacheOpcodes13And14(t *testing.T) {
	e := newEval(t)
	key := at(5)
	val := at(50)

	_, err := e.Eval(at(0), f(at(13), f(at(1), key), f(at(1), val)))
	require.NoError(t, err)

	got, err := e.Eval(at(0), f(at(14), f(at(1), key)))
	require.NoError(t, err)
	cell, ok := got.(noun.Cell)
	require.True(t, ok)
	assert.True(t, noun.Equal(val, cell.Right))

	// Overwrite.
	val2 := at(51)
	_, err = e.Eval(at(0), f(at(13), f(at(1), key), f(at(1), val2)))
	require.NoError(t, err)
	got, err = e.Eval(at(0), f(at(14), f(at(1), key)))
	require.NoError(t, err)
	cell, _ = got.(noun.Cell)
	assert.True(t, noun.Equal(val2, cell.Right))
}

func TestSpliceOpcode16(t *testing.T) {
	e := newEval(t)
	buf := noun.NewAtom([]byte{0xAA, 0xBB, 0xCC})
	shape := at(2) // take first 2 bytes
	got, err := e.Eval(at(0), f(at(16), f(at(1), buf), f(at(1), shape)))
	require.NoError(t, err)
	assert.True(t, noun.Equal(noun.NewAtom([]byte{0xAA, 0xBB}), got))
}

func TestEntropyOpcode15Deterministic(t *testing.T) {
	e, err := New(WithEntropySource(NewDeterministicEntropy(42)))
	require.NoError(t, err)
	got, err := e.Eval(at(0), f(at(15), f(at(1), at(4))))
	require.NoError(t, err)
	assert.Equal(t, 4, got.(noun.Atom).Len())
}

func TestIllFormedFormulaErrors(t *testing.T) {
	e := newEval(t)

	_, err := e.Eval(at(0), at(0)) // formula must be a cell
	assert.Error(t, err)

	_, err = e.Eval(at(0), noun.NewCell(at(99), at(0))) // unknown opcode
	assert.Error(t, err)

	_, err = e.Eval(at(0), noun.NewCell(at(0), noun.NewAtom(nil))) // axis 0 invalid
	assert.Error(t, err)
}
