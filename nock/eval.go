package nock

import (
	"github.com/pkg/errors"

	"github.com/PeterReid/hoplight/noun"
)

const defaultCacheSize = 4096

// Option configures an Evaluator. See WithCacheSize, WithEntropySource.
type Option func(*Evaluator)

// WithCacheSize bounds both memo caches to size entries each.
func WithCacheSize(size int) Option {
	return func(e *Evaluator) { e.cacheSize = size }
}

// WithEntropySource overrides the default crypto/rand-backed source opcode
// 15 draws from. Tests and demos pass a DeterministicEntropy.
func WithEntropySource(s EntropySource) Option {
	return func(e *Evaluator) { e.entropy = s }
}

// Evaluator implements the pure function nock(subject, formula) -> product
// (spec §4.4), with its two memo caches (spec §4.5) and entropy source
// (spec §6). An Evaluator is single-threaded cooperative: one Eval call
// runs to completion before returning (spec §5). Sharing one Evaluator
// across goroutines requires serializing calls to Eval externally.
type Evaluator struct {
	Caches *Caches

	cacheSize int
	entropy   EntropySource
}

// New constructs an Evaluator with fresh, empty memo caches.
func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{cacheSize: defaultCacheSize, entropy: CryptoEntropy{}}
	for _, opt := range opts {
		opt(e)
	}
	caches, err := NewCaches(e.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "allocating memo caches")
	}
	e.Caches = caches
	return e, nil
}

// EvalPair evaluates the top-level surface call *a, where a is a
// [subject formula] cell (spec §4.4, "top-level surface call").
func (e *Evaluator) EvalPair(a noun.Noun) (noun.Noun, error) {
	cell, ok := a.(noun.Cell)
	if !ok {
		return nil, errors.Wrap(ErrNotCell, "*a requires a [subject formula] cell")
	}
	return e.Eval(cell.Left, cell.Right)
}

// Eval computes *[subject formula] (spec §4.4). Opcodes 2, 7, 8, and 9
// induce tail positions; this loop reassigns (subject, formula) and
// continues instead of recursing for those opcodes, so formulas built from
// them (e.g. loops expressed via opcode 2) run in bounded native stack
// (spec §4.4 "Recursion discipline").
func (e *Evaluator) Eval(subject, formula noun.Noun) (noun.Noun, error) {
	for {
		cell, ok := formula.(noun.Cell)
		if !ok {
			return nil, errors.Wrap(ErrIllFormedFormula, "formula must be a cell")
		}

		// Autocons: a cell-headed formula evaluates both sides against the
		// same subject and pairs the results (spec §4.4 rule 1).
		if _, headIsCell := cell.Left.(noun.Cell); headIsCell {
			left, err := e.Eval(subject, cell.Left)
			if err != nil {
				return nil, err
			}
			right, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			return noun.NewCell(left, right), nil
		}

		op, ok := cell.Left.(noun.Atom)
		if !ok {
			return nil, errors.Wrap(ErrNotAtom, "opcode")
		}
		opcode := op.AsUint().Int64()

		switch opcode {
		case 0: // [a 0 b] = /[b a]
			axis := cell.Right
			b, ok := axis.(noun.Atom)
			if !ok {
				return nil, errors.Wrap(ErrNotAtom, "opcode 0 axis")
			}
			return Axis(b.AsUint(), subject)

		case 1: // [a 1 b] = b
			return cell.Right, nil

		case 2: // [a 2 b c]: evaluate c against a to get a formula, evaluate
			// b against a to get a subject, then run that formula against
			// that subject.
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 2")
			}
			newFormula, err := e.Eval(subject, c)
			if err != nil {
				return nil, err
			}
			newSubject, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			subject, formula = newSubject, newFormula
			continue

		case 3: // [a 3 b] = ?*[a b]
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			return cellTest(v), nil

		case 4: // [a 4 b] = +*[a b]
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			return Increment(v)

		case 5: // [a 5 b] = =*[a b]
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			return Eq(v)

		case 6: // [a 6 b c d]: if *[a b]=0 run c, if =1 run d
			b, c, d, err := triple(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 6")
			}
			cond, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			zero, err := isZero(cond)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 6 condition")
			}
			if zero {
				formula = c
			} else {
				atom, ok := cond.(noun.Atom)
				if !ok || atom.AsUint().Cmp(one) != 0 {
					return nil, errors.Wrap(ErrIllFormedFormula, "opcode 6 condition is neither 0 nor 1")
				}
				formula = d
			}
			continue

		case 7: // [a 7 b c] = *[*[a b] c]
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 7")
			}
			newSubject, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			subject, formula = newSubject, c
			continue

		case 8: // [a 8 b c]: extend subject to [*[a b] a], then run c
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 8")
			}
			pushed, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			subject, formula = noun.NewCell(pushed, subject), c
			continue

		case 9: // [a 9 b c]: core = *[a c]; run axis b of core against core
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 9")
			}
			core, err := e.Eval(subject, c)
			if err != nil {
				return nil, err
			}
			axisAtom, ok := b.(noun.Atom)
			if !ok {
				return nil, errors.Wrap(ErrNotAtom, "opcode 9 axis")
			}
			arm, err := Axis(axisAtom.AsUint(), core)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 9 axis lookup")
			}
			subject, formula = core, arm
			continue

		case 10: // [a 10 b] = hash(*[a b])
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			h := noun.ContentHash(v)
			return noun.NewAtom(h[:]), nil

		case 11: // [a 11 b]: store *[a b] under its own hash; return 0
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			e.Caches.StoreHash(v)
			return noun.NewAtom([]byte{0}), nil

		case 12: // [a 12 b]: hash *[a b]; 1 if unstored, else [0 X]
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			stored, ok := e.Caches.LookupHash(v)
			if !ok {
				return noun.NewAtom([]byte{1}), nil
			}
			return noun.NewCell(noun.NewAtom([]byte{0}), stored), nil

		case 13: // [a 13 b c]: store *[a c] under key *[a b]; return 0
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 13")
			}
			key, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			value, err := e.Eval(subject, c)
			if err != nil {
				return nil, err
			}
			e.Caches.StoreKey(key, value)
			return noun.NewAtom([]byte{0}), nil

		case 14: // [a 14 b]: key *[a b]; 1 if absent, else [0 X]
			key, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			value, ok := e.Caches.LookupKey(key)
			if !ok {
				return noun.NewAtom([]byte{1}), nil
			}
			return noun.NewCell(noun.NewAtom([]byte{0}), value), nil

		case 15: // [a 15 b]: n = *[a b]; return a fresh atom of n random bytes
			v, err := e.Eval(subject, cell.Right)
			if err != nil {
				return nil, err
			}
			a, ok := v.(noun.Atom)
			if !ok {
				return nil, errors.Wrap(ErrNotAtom, "opcode 15 length")
			}
			n := int(a.AsUint().Int64())
			b, err := e.entropy.Read(n)
			if err != nil {
				return nil, err
			}
			return noun.NewAtom(b), nil

		case 16: // [a 16 b c] = @[*[a b] *[a c]]
			b, c, err := pair(cell.Right)
			if err != nil {
				return nil, errors.Wrap(err, "opcode 16")
			}
			target, err := e.Eval(subject, b)
			if err != nil {
				return nil, err
			}
			shape, err := e.Eval(subject, c)
			if err != nil {
				return nil, err
			}
			return Splice(target, shape)

		default:
			return nil, errors.Wrapf(ErrUnknownOpcode, "opcode %d", opcode)
		}
	}
}

// pair destructures a formula's argument noun into its two components,
// i.e. the Right-hand side of a 2-argument opcode formula [op b c].
func pair(n noun.Noun) (b, c noun.Noun, err error) {
	cell, ok := n.(noun.Cell)
	if !ok {
		return nil, nil, ErrIllFormedFormula
	}
	return cell.Left, cell.Right, nil
}

// triple destructures a 3-argument opcode formula's [b c d] argument noun.
func triple(n noun.Noun) (b, c, d noun.Noun, err error) {
	cell, ok := n.(noun.Cell)
	if !ok {
		return nil, nil, nil, ErrIllFormedFormula
	}
	rest, ok := cell.Right.(noun.Cell)
	if !ok {
		return nil, nil, nil, ErrIllFormedFormula
	}
	return cell.Left, rest.Left, rest.Right, nil
}

