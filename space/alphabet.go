package space

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// This file models the password space: an ordered alphabet of Unicode code points and the
// fixed-length passwords drawn from it. Symbol indices are not byte-bounded, so alphabets far
// larger than 255 symbols are legal.

var (
	// ErrInvalidSeedPassword reports a password of the wrong length or containing a symbol
	// outside the declared alphabet.
	ErrInvalidSeedPassword = errors.New("invalid seed password")
	// ErrAlphabetMismatch reports a disagreement between a supplied alphabet and the one a
	// table or hash file was built with.
	ErrAlphabetMismatch = errors.New("alphabet mismatch")
)

// Alphabet is an ordered set of unique code points. The order is significant: it defines the
// symbol indices used by the reduction function and the table codec, so two alphabets with the
// same symbols in a different order are different alphabets.
type Alphabet struct {
	symbols []rune
	index   map[rune]uint32
}

// NewAlphabet builds an alphabet from symbols, rejecting empty sets and duplicates.
func NewAlphabet(symbols []rune) (*Alphabet, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: alphabet is empty", ErrAlphabetMismatch)
	}
	a := &Alphabet{symbols: make([]rune, len(symbols)), index: make(map[rune]uint32, len(symbols))}
	copy(a.symbols, symbols)
	for i, r := range symbols {
		if !utf8.ValidRune(r) {
			return nil, fmt.Errorf("%w: invalid code point %U", ErrAlphabetMismatch, r)
		}
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrAlphabetMismatch, r)
		}
		a.index[r] = uint32(i)
	}
	return a, nil
}

// ASCII returns the printable ASCII alphabet, code points 32 through 126.
func ASCII() *Alphabet {
	a, _ := Range(' ', '~')
	return a
}

// Lowercase returns the alphabet a through z.
func Lowercase() *Alphabet {
	a, _ := Range('a', 'z')
	return a
}

// Range returns the alphabet of all code points from lo through hi inclusive.
func Range(lo, hi rune) (*Alphabet, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: empty range %U..%U", ErrAlphabetMismatch, lo, hi)
	}
	symbols := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		symbols = append(symbols, r)
	}
	return NewAlphabet(symbols)
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Symbols returns the symbols in index order. The slice is shared; callers must not modify it.
func (a *Alphabet) Symbols() []rune { return a.symbols }

// Rune returns the symbol at index i.
func (a *Alphabet) Rune(i uint32) rune { return a.symbols[i] }

// Index returns the position of r, if present.
func (a *Alphabet) Index(r rune) (uint32, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Contains reports whether r is a symbol of a.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Equal reports whether o has the same symbols in the same order.
func (a *Alphabet) Equal(o *Alphabet) bool {
	if o == nil || len(a.symbols) != len(o.symbols) {
		return false
	}
	for i, r := range a.symbols {
		if o.symbols[i] != r {
			return false
		}
	}
	return true
}

// Check validates that password holds exactly length symbols, all drawn from a.
func (a *Alphabet) Check(password string, length int) error {
	n := 0
	for _, r := range password {
		if !a.Contains(r) {
			return fmt.Errorf("%w: symbol %q not in alphabet", ErrInvalidSeedPassword, r)
		}
		n++
	}
	if n != length {
		return fmt.Errorf("%w: %d symbols, want %d", ErrInvalidSeedPassword, n, length)
	}
	return nil
}

// Indices maps password to its symbol indices, failing on foreign symbols.
func (a *Alphabet) Indices(password string) ([]uint32, error) {
	out := make([]uint32, 0, len(password))
	for _, r := range password {
		i, ok := a.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: symbol %q not in alphabet", ErrInvalidSeedPassword, r)
		}
		out = append(out, i)
	}
	return out, nil
}

// FromIndices is the inverse of Indices; every index must be below Size.
func (a *Alphabet) FromIndices(indices []uint32) (string, error) {
	buf := make([]rune, len(indices))
	for i, x := range indices {
		if int(x) >= len(a.symbols) {
			return "", fmt.Errorf("%w: symbol index %d outside alphabet of %d", ErrAlphabetMismatch, x, len(a.symbols))
		}
		buf[i] = a.symbols[x]
	}
	return string(buf), nil
}
