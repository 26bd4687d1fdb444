package noun

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseText parses the bracket surface notation String renders: a hex atom
// literal like 0x2a, or a right-associative cell [a b c...]. It is the
// inverse of Noun.String, used by nockcat to read formulas and subjects from
// the command line and test fixtures.
func ParseText(s string) (Noun, error) {
	p := &textParser{s: s}
	p.skipSpace()
	n, err := p.parseNoun()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, errors.Errorf("noun: trailing input %q", p.s[p.pos:])
	}
	return n, nil
}

type textParser struct {
	s   string
	pos int
}

func (p *textParser) skipSpace() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *textParser) parseNoun() (Noun, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, errors.New("noun: unexpected end of input")
	}
	if p.s[p.pos] == '[' {
		return p.parseCell()
	}
	return p.parseAtom()
}

func (p *textParser) parseCell() (Noun, error) {
	p.pos++ // consume '['
	var elems []Noun
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, errors.New("noun: unterminated cell, missing ']'")
		}
		if p.s[p.pos] == ']' {
			p.pos++
			break
		}
		n, err := p.parseNoun()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	if len(elems) < 2 {
		return nil, errors.Errorf("noun: cell needs at least 2 elements, got %d", len(elems))
	}
	return Cons(elems[len(elems)-1], elems[:len(elems)-1]...), nil
}

func (p *textParser) parseAtom() (Noun, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ' ' && p.s[p.pos] != '[' && p.s[p.pos] != ']' {
		p.pos++
	}
	tok := p.s[start:p.pos]
	if !strings.HasPrefix(tok, "0x") {
		return nil, errors.Errorf("noun: atom literal %q must start with 0x", tok)
	}
	if tok == "0x0" {
		return NewAtom(nil), nil
	}
	hexDigits := tok[2:]
	if len(hexDigits) == 0 || len(hexDigits)%2 != 0 {
		return nil, errors.Errorf("noun: atom literal %q must have an even number of hex digits", tok)
	}
	b := make([]byte, len(hexDigits)/2)
	for i := range b {
		v, err := strconv.ParseUint(hexDigits[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "noun: invalid atom literal %q", tok)
		}
		b[i] = byte(v)
	}
	return NewAtom(b), nil
}
