package noun

import (
	"encoding/binary"

	"github.com/dolthub/maphash"
)

// Hash is a fixed-width content hash: a function of a noun's structural
// equality class. Two structurally equal nouns always produce equal hashes;
// the converse holds up to the collision resistance of the underlying
// algorithm, which is implementation-defined but deterministic within a
// process (spec §4.3).
type Hash [8]byte

// bytesHasher hashes the string view of an atom's bytes. dolthub/maphash
// wraps the runtime's seeded maphash algorithm behind a generic, comparable-
// keyed API; a process-local seed is all the spec requires (§4.3, §6).
var bytesHasher = maphash.NewHasher[string]()

// HashAtom computes H_atom(b): the content hash of an atom's raw bytes.
func HashAtom(b []byte) Hash {
	var h Hash
	binary.LittleEndian.PutUint64(h[:], bytesHasher.Hash(string(b)))
	return h
}

// HashCell computes H_cell(hash(l), hash(r)): the content hash of a cell,
// combining its two children's hashes. The combination is itself run back
// through the atom hasher so that cell hashes and atom hashes share one
// collision-resistant core.
func HashCell(left, right Hash) Hash {
	buf := make([]byte, 0, 1+len(left)+len(right))
	buf = append(buf, 'c') // distinguish a cell combination from a same-length atom
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	var h Hash
	binary.LittleEndian.PutUint64(h[:], bytesHasher.Hash(string(buf)))
	return h
}

// ContentHash computes hash(n) by structural recursion, per spec §4.3:
// hash(Atom(b)) = H_atom(b), hash(Cell(l,r)) = H_cell(hash(l), hash(r)).
func ContentHash(n Noun) Hash {
	switch v := n.(type) {
	case Atom:
		return HashAtom(v.b)
	case Cell:
		return HashCell(ContentHash(v.Left), ContentHash(v.Right))
	default:
		panic("noun: ContentHash called on unrecognized Noun implementation")
	}
}

// AsKey renders a Hash as a map key type usable directly with stdlib or
// generic-cache containers.
func (h Hash) AsKey() [8]byte { return h }
