// Package codec implements the wire format from spec §4: a self-delimiting
// atom byte encoding (this file) and a whole-noun encoding built on top of it
// (noun.go).
package codec

import (
	"github.com/pkg/errors"
)

// Encoding constants for the atom codec (spec §4.1).
//
// A single byte b < shortFormBase is a one-byte atom with value b.
// A byte in [shortFormBase, varintSentinel) encodes a short atom of length
// b-shortFormBase (0..maxShortLen inclusive).
// The byte varintSentinel means "varint follows": the varint value v gives a
// content length of v+maxShortLen+1, disambiguating the short-form and
// varint-form length spaces so they never overlap (spec §9, "Codec boundary
// at length 65" — this is the expansion's resolution of that open question).
const (
	shortFormBase  = 190 // 0xBE
	maxShortLen    = 64
	varintSentinel = 255 // 0xFF == shortFormBase + maxShortLen + 1
)

// EncodeAtom appends the self-delimiting encoding of an atom's bytes to buf
// and returns the extended slice.
func EncodeAtom(buf []byte, b []byte) []byte {
	n := len(b)
	switch {
	case n == 1 && b[0] < shortFormBase:
		return append(buf, b[0])
	case n <= maxShortLen:
		buf = append(buf, byte(shortFormBase+n))
		return append(buf, b...)
	default:
		buf = append(buf, varintSentinel)
		buf = appendVarint(buf, uint64(n-maxShortLen-1))
		return append(buf, b...)
	}
}

// DecodeAtom reads one self-delimiting atom encoding from the front of buf.
// It returns the atom's content bytes (a fresh slice, safe to retain), the
// number of input bytes consumed, and an error if buf is truncated or
// otherwise malformed.
func DecodeAtom(buf []byte) (value []byte, consumed int, err error) {
	if len(buf) == 0 {
		return nil, 0, errors.Wrap(ErrTruncated, "decoding atom prefix byte")
	}
	b0 := buf[0]
	switch {
	case b0 < shortFormBase:
		return []byte{b0}, 1, nil
	case b0 < varintSentinel:
		n := int(b0 - shortFormBase)
		return readContent(buf[1:], n, 1)
	default: // b0 == varintSentinel
		v, vn, err := readVarint(buf[1:])
		if err != nil {
			return nil, 0, errors.Wrap(err, "decoding atom varint length")
		}
		n := int(v) + maxShortLen + 1
		return readContent(buf[1+vn:], n, 1+vn)
	}
}

func readContent(buf []byte, n, headerLen int) (value []byte, consumed int, err error) {
	if n > len(buf) {
		return nil, 0, errors.Wrapf(ErrLengthExceedsInput, "need %d content bytes, have %d", n, len(buf))
	}
	value = make([]byte, n)
	copy(value, buf[:n])
	return value, headerLen + n, nil
}

// appendVarint appends n's 7-bit little-endian-group varint encoding to buf.
// Every non-terminal group byte has its high bit set; the terminal byte
// clears it (spec §4.1).
func appendVarint(buf []byte, n uint64) []byte {
	for {
		group := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(buf, group)
		}
		buf = append(buf, group|0x80)
	}
}

// readVarint decodes a 7-bit little-endian-group varint from the front of
// buf, returning the value and bytes consumed.
func readVarint(buf []byte) (n uint64, consumed int, err error) {
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, errors.New("codec: varint overflowed 64 bits")
		}
		n |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return n, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrVarintUnterminated
}
