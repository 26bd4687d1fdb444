// Package nock implements the Nock evaluator: opcode dispatch over nouns
// (spec §4.4), its auxiliary axis/arithmetic/splice operators, and the two
// memo caches opcodes 10-14 consult (spec §4.5).
package nock

import "errors"

// Sentinel evaluation errors (spec §7 "Evaluation errors"). Wrapped with
// github.com/pkg/errors at the call site so failures carry the formula/axis
// context that produced them.
var (
	// ErrIllFormedFormula means a formula's opcode cell had the wrong shape
	// for its opcode's arity (e.g. [a 0] with no axis).
	ErrIllFormedFormula = errors.New("nock: ill-formed formula")

	// ErrUnknownOpcode means the formula's head atom was not in 0..16.
	ErrUnknownOpcode = errors.New("nock: unknown opcode")

	// ErrNotAtom means an atom was required (an opcode number, an axis, an
	// increment/splice-length operand) but a cell was supplied.
	ErrNotAtom = errors.New("nock: expected an atom")

	// ErrNotCell means a cell was required (the operand of =, or the
	// argument of EvalPair) but an atom was supplied.
	ErrNotCell = errors.New("nock: expected a cell")

	// ErrAxisIntoAtom means a tree-axis walk stepped into an atom, which has
	// no children.
	ErrAxisIntoAtom = errors.New("nock: axis walked into an atom")

	// ErrAxisZero means axis 0 was requested; axes are 1-indexed.
	ErrAxisZero = errors.New("nock: axis 0 is not addressable")

	// ErrSpliceLengthExceedsBuffer means ^[a b]'s length argument exceeded
	// the number of bytes remaining in the buffer being split.
	ErrSpliceLengthExceedsBuffer = errors.New("nock: splice length exceeds buffer")

	// ErrEntropyExhausted means the injected entropy source could not
	// supply the requested number of bytes.
	ErrEntropyExhausted = errors.New("nock: entropy source exhausted")
)
