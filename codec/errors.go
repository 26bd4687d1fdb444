package codec

import "errors"

// Sentinel errors returned (optionally wrapped with github.com/pkg/errors
// context) by the atom and noun codecs. Callers may errors.Is against these.
var (
	// ErrTruncated means the input was empty where an atom's prefix byte
	// was expected. A prefix whose content bytes run past the input is
	// reported as ErrLengthExceedsInput instead.
	ErrTruncated = errors.New("codec: truncated input")

	// ErrVarintUnterminated means a varint's continuation bit never cleared
	// before the input ran out.
	ErrVarintUnterminated = errors.New("codec: varint did not terminate within input")

	// ErrLengthExceedsInput means a decoded content length is larger than
	// the bytes remaining in the input.
	ErrLengthExceedsInput = errors.New("codec: atom content length exceeds input remainder")

	// ErrStructureMismatch means the structure bitstream and the recovered
	// atom count disagree (spec §4.2 "Failures").
	ErrStructureMismatch = errors.New("codec: atom count does not match structure bitstream")

	// ErrStructureUnderflow means the structure bitstream asked for more
	// atoms or children than the input provided.
	ErrStructureUnderflow = errors.New("codec: structure bitstream underflowed atom stream")

	// ErrNonZeroPadding means the final structure byte's unused high bits
	// were not all zero.
	ErrNonZeroPadding = errors.New("codec: non-zero padding bits in structure bitstream")

	// ErrTrailingBytes means the input had bytes left over after a complete
	// noun was decoded, and stream mode was not requested (spec §6).
	ErrTrailingBytes = errors.New("codec: trailing bytes after decoded noun")
)
