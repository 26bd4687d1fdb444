package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeterReid/hoplight/noun"
)

func a(b byte) noun.Noun { return noun.NewAtom([]byte{b}) }

func TestEncodeCellConcreteScenario(t *testing.T) {
	// spec §8 scenario 4: Cell(Atom(0x01), Atom(0x02)).
	n := noun.NewCell(a(0x01), a(0x02))
	got := Encode(n)
	want := []byte{0x02, 0x01, 0x02, 0x01}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestNounRoundTrip(t *testing.T) {
	cases := []noun.Noun{
		noun.NewAtom(nil),
		a(0x2A),
		noun.NewCell(a(1), a(2)),
		noun.NewCell(noun.NewCell(a(1), a(2)), a(3)),
		noun.Cons(a(40), a(1), a(2), a(3)),
		noun.NewCell(noun.NewAtom(nil), noun.NewAtom([]byte{0xff, 0xff, 0xff})),
	}
	for _, n := range cases {
		enc := Encode(n)
		got, err := Decode(enc)
		require.NoError(t, err)
		assert.True(t, noun.Equal(n, got), "round trip mismatch for %s: got %s", n, got)

		// encode is deterministic
		assert.Equal(t, enc, Encode(n))
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	enc := Encode(a(7))
	_, err := Decode(append(enc, 0x00))
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestDecodeStreamAllowsTrailingBytes(t *testing.T) {
	enc := Encode(a(7))
	extra := append(append([]byte{}, enc...), 0xAB)
	got, rest, err := DecodeStream(extra)
	require.NoError(t, err)
	assert.True(t, noun.Equal(a(7), got))
	assert.Equal(t, []byte{0xAB}, rest)
}

func TestAtomCensusBitCounts(t *testing.T) {
	// spec §8 "Atom census": #0-bits == #atoms, #1-bits == atoms-1 for any
	// non-empty noun.
	n := noun.Cons(a(4), a(1), a(2), a(3))
	var stream []byte
	var bits bitWriter
	collect(n, &stream, &bits)
	packed := bits.flush()

	zeros, ones := 0, 0
	br := newBitReader(packed)
	for {
		bit, ok := br.readBit()
		if !ok {
			break
		}
		if bit {
			ones++
		} else {
			zeros++
		}
	}
	// Trailing pad bits are zero too and are counted above, so the zero count
	// is at least the atom count (3 cells + 4 atoms = 7 tree bits, plus 1 pad
	// bit here).
	assert.GreaterOrEqual(t, zeros, 4)
	assert.Equal(t, 3, ones)
}

func TestDecodeTruncatedNoun(t *testing.T) {
	enc := Encode(noun.NewCell(a(1), a(2)))
	_, err := Decode(enc[:len(enc)-1])
	assert.Error(t, err)
}
