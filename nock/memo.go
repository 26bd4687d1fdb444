package nock

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PeterReid/hoplight/noun"
)

// keyEntry pairs a key_table value with the original key noun, so a
// content-hash collision between two structurally unequal keys can be
// detected rather than silently returning the wrong value (spec §4.5).
type keyEntry struct {
	key   noun.Noun
	value noun.Noun
}

// Caches holds the two memo tables opcodes 10-14 consult: hash_table
// (content-hash keyed) and key_table (structural-equality keyed). Both are
// backed by github.com/hashicorp/golang-lru/v2 so a host can bound memory
// growth (spec §5 "Resource bounds") instead of the default unbounded
// Go map a from-scratch implementation would reach for. hash_table's values
// additionally pass through a noun.Arena, so repeated opcode 11 stores of
// structurally equal nouns collapse onto one shared instance (spec §4.3).
//
// Each table is bounded by entry count: once a table holds size entries,
// storing a new key evicts its least recently used entry. This can happen
// within a single Eval call as well as across calls; a run that never
// exceeds size entries per table sees no eviction.
type Caches struct {
	hashTable *lru.Cache[noun.Hash, noun.Noun]
	keyTable  *lru.Cache[noun.Hash, keyEntry]
	arena     *noun.Arena
}

// NewCaches returns a pair of memo caches, each bounded to size entries.
func NewCaches(size int) (*Caches, error) {
	h, err := lru.New[noun.Hash, noun.Noun](size)
	if err != nil {
		return nil, err
	}
	k, err := lru.New[noun.Hash, keyEntry](size)
	if err != nil {
		return nil, err
	}
	return &Caches{hashTable: h, keyTable: k, arena: noun.NewArena()}, nil
}

// StoreHash implements opcode 11's storage half: store v under its own
// content hash. Insertion under an existing key is idempotent, since the
// stored noun and v necessarily agree once their hashes agree (spec §4.5).
func (c *Caches) StoreHash(v noun.Noun) {
	v = c.arena.Intern(v)
	h := noun.ContentHash(v)
	Log.Printf("hash_table store %x", h)
	c.hashTable.Add(h, v)
}

// LookupHash implements opcode 12's read half: look up the noun previously
// stored under v's content hash.
func (c *Caches) LookupHash(v noun.Noun) (noun.Noun, bool) {
	stored, ok := c.hashTable.Get(noun.ContentHash(v))
	return stored, ok
}

// StoreKey implements opcode 13: store value under key in key_table,
// unconditionally overwriting any prior value under the same key (spec
// §4.5).
func (c *Caches) StoreKey(key, value noun.Noun) {
	h := noun.ContentHash(key)
	Log.Printf("key_table store %x", h)
	c.keyTable.Add(h, keyEntry{key: key, value: value})
}

// LookupKey implements opcode 14: look up the value stored under key. A
// content-hash match against a structurally different key is treated as a
// miss.
func (c *Caches) LookupKey(key noun.Noun) (noun.Noun, bool) {
	entry, ok := c.keyTable.Get(noun.ContentHash(key))
	if !ok || !noun.Equal(entry.key, key) {
		return nil, false
	}
	return entry.value, true
}
