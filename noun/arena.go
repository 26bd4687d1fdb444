package noun

// Arena provides structural interning of nouns by content hash: callers that
// want memoization or other identity-sensitive sharing run their constructed
// nouns through Intern so that structurally equal subtrees collapse to a
// single shared instance (spec §4.3, §9 "Cyclic graphs" / sharing notes).
//
// Interning is opt-in. The codec constructs nouns freely without going
// through an Arena; package nock's hash_table (see memo.go) routes opcode
// 11 stores through one, so repeated stores of structurally equal nouns
// share a single underlying instance.
type Arena struct {
	entries map[Hash]Noun
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{entries: make(map[Hash]Noun)}
}

// Intern returns a canonical representative for n: if an earlier call
// interned a structurally equal noun, that earlier noun is returned
// unchanged; otherwise n itself is recorded and returned.
//
// A hash collision between structurally unequal nouns is detected and
// resolved by preferring the first interned value; callers who need
// collision detection surfaced should call Lookup first.
func (ar *Arena) Intern(n Noun) Noun {
	h := ContentHash(n)
	if existing, ok := ar.entries[h]; ok {
		if Equal(existing, n) {
			return existing
		}
		return n
	}
	ar.entries[h] = n
	return n
}

// Lookup returns the noun previously interned under n's content hash, and
// whether the stored noun is in fact structurally equal to n (false
// indicates a hash collision against a different noun).
func (ar *Arena) Lookup(n Noun) (found Noun, exact bool, ok bool) {
	h := ContentHash(n)
	existing, present := ar.entries[h]
	if !present {
		return nil, false, false
	}
	return existing, Equal(existing, n), true
}

// Len returns the number of distinct hash buckets currently interned.
func (ar *Arena) Len() int { return len(ar.entries) }
