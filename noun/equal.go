package noun

// Equal reports whether a and b are the same noun by structural equality:
// atoms are equal iff byte-equal, cells are equal iff both children are
// pairwise equal. This is byte-exact; no trailing-zero normalization is
// performed anywhere in this package (see spec §3, §9).
func Equal(a, b Noun) bool {
	switch av := a.(type) {
	case Atom:
		bv, ok := b.(Atom)
		if !ok {
			return false
		}
		return atomBytesEqual(av.b, bv.b)
	case Cell:
		bv, ok := b.(Cell)
		if !ok {
			return false
		}
		return Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	default:
		panic("noun: Equal called on unrecognized Noun implementation")
	}
}

func atomBytesEqual(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
