package nock

import (
	crand "crypto/rand"
	"math/rand"

	"github.com/pkg/errors"
)

// EntropySource supplies the random bytes opcode 15 consumes. No
// cryptographic quality is mandated (spec §6); callers choose.
type EntropySource interface {
	Read(n int) ([]byte, error)
}

// CryptoEntropy draws bytes from crypto/rand. It is the default source used
// by New when no WithEntropySource option is supplied.
type CryptoEntropy struct{}

// Read returns n cryptographically random bytes.
func (CryptoEntropy) Read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		return nil, errors.Wrap(ErrEntropyExhausted, err.Error())
	}
	return b, nil
}

// DeterministicEntropy draws bytes from a seeded PRNG. Tests and the
// `nockcat eval --entropy-seed` flag use it so that opcode 15 (the spec's
// sole non-deterministic opcode, see §9 "Opcode 15 purity") produces
// reproducible output.
type DeterministicEntropy struct {
	r *rand.Rand
}

// NewDeterministicEntropy returns an entropy source seeded deterministically
// from seed.
func NewDeterministicEntropy(seed uint64) *DeterministicEntropy {
	return &DeterministicEntropy{r: rand.New(rand.NewSource(int64(seed)))}
}

// Read returns n pseudo-random bytes drawn from the seeded generator.
func (d *DeterministicEntropy) Read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := d.r.Read(b); err != nil {
		return nil, errors.Wrap(ErrEntropyExhausted, err.Error())
	}
	return b, nil
}
