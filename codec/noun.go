package codec

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/PeterReid/hoplight/noun"
)

// Encode serializes a noun to its wire form: a header atom giving the
// concatenated atom-body length, the atom bodies in traversal order, and a
// packed structure bitstream (spec §4.2).
func Encode(n noun.Noun) []byte {
	var atomStream []byte
	var bits bitWriter
	collect(n, &atomStream, &bits)

	out := EncodeAtom(nil, noun.AtomFromUint(big.NewInt(int64(len(atomStream)))).Bytes())
	out = append(out, atomStream...)
	out = append(out, bits.flush()...)
	return out
}

// collect performs the atom census and structure-bit recording of the
// traversal order defined in spec §4.2: an atom visit appends its encoding
// to atomStream and a 0 bit; a cell visit appends a 1 bit and recurses left
// then right.
func collect(n noun.Noun, atomStream *[]byte, bits *bitWriter) {
	switch v := n.(type) {
	case noun.Atom:
		*atomStream = EncodeAtom(*atomStream, v.Bytes())
		bits.writeBit(false)
	case noun.Cell:
		bits.writeBit(true)
		collect(v.Left, atomStream, bits)
		collect(v.Right, atomStream, bits)
	default:
		panic("codec: Encode called on unrecognized Noun implementation")
	}
}

// Decode reconstructs a noun from its wire form, rejecting any trailing
// bytes left over once a complete noun has been parsed (spec §6: "SHOULD
// reject trailing bytes unless the caller explicitly requests stream
// mode"). Use DecodeStream to allow and report trailing bytes instead.
func Decode(buf []byte) (noun.Noun, error) {
	n, rest, err := DecodeStream(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(ErrTrailingBytes, "%d byte(s) remaining", len(rest))
	}
	return n, nil
}

// DecodeStream reconstructs a single noun from the front of buf and returns
// whatever bytes remain unconsumed, for callers that multiplex several
// encoded nouns on one stream (spec §6, stream mode).
func DecodeStream(buf []byte) (n noun.Noun, rest []byte, err error) {
	lenBytes, consumed, err := DecodeAtom(buf)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding noun header length")
	}
	l := int(noun.NewAtom(lenBytes).AsUint().Int64())
	buf = buf[consumed:]
	if l > len(buf) {
		return nil, nil, errors.Wrapf(ErrLengthExceedsInput, "header claims %d atom-body bytes, have %d", l, len(buf))
	}
	atomBody, structureBody := buf[:l], buf[l:]

	atoms, err := decodeAtomStream(atomBody)
	if err != nil {
		return nil, nil, err
	}

	br := newBitReader(structureBody)
	cursor := 0
	n, err = rebuild(br, atoms, &cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != len(atoms) {
		return nil, nil, errors.Wrapf(ErrStructureMismatch, "consumed %d of %d atoms", cursor, len(atoms))
	}

	// The decoder knows the tree is complete once rebuild returns; any
	// leftover bits in the final structure byte must be zero padding, and
	// any bytes beyond that byte are returned as rest for the next stream
	// element (Decode rejects them whatever their value).
	padEnd := br.pos*8 + int(br.nbit)
	fullBytes := (padEnd + 7) / 8
	if !allZeroFrom(structureBody, br) {
		return nil, nil, ErrNonZeroPadding
	}
	rest = structureBody[fullBytes:]
	return n, rest, nil
}

// allZeroFrom reports whether every bit remaining in the reader's current
// byte (after its read position) is zero, which is the padding the final
// structure byte carries once the tree is complete.
func allZeroFrom(structureBody []byte, br *bitReader) bool {
	if br.nbit == 0 {
		return true // tree ended exactly on a byte boundary; nothing to pad
	}
	if br.pos >= len(structureBody) {
		return true
	}
	b := structureBody[br.pos]
	mask := byte(0xff) << br.nbit
	return b&mask == 0
}

// decodeAtomStream repeatedly decodes atom encodings until the buffer is
// exactly exhausted.
func decodeAtomStream(buf []byte) ([][]byte, error) {
	var atoms [][]byte
	for len(buf) > 0 {
		v, n, err := DecodeAtom(buf)
		if err != nil {
			return nil, errors.Wrap(err, "decoding atom stream")
		}
		atoms = append(atoms, v)
		buf = buf[n:]
	}
	return atoms, nil
}

// rebuild consumes structure bits and atoms to reconstruct one tree,
// following spec §4.2's decode rule: a 1 bit starts a cell and recurses
// into left then right; a 0 bit consumes the next atom.
func rebuild(br *bitReader, atoms [][]byte, cursor *int) (noun.Noun, error) {
	bit, ok := br.readBit()
	if !ok {
		return nil, errors.Wrap(ErrStructureUnderflow, "structure bitstream ended mid-tree")
	}
	if !bit {
		if *cursor >= len(atoms) {
			return nil, errors.Wrap(ErrStructureUnderflow, "structure bitstream requested more atoms than decoded")
		}
		a := noun.NewAtom(atoms[*cursor])
		*cursor++
		return a, nil
	}
	left, err := rebuild(br, atoms, cursor)
	if err != nil {
		return nil, err
	}
	right, err := rebuild(br, atoms, cursor)
	if err != nil {
		return nil, err
	}
	return noun.NewCell(left, right), nil
}
