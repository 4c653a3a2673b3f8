package rainbow

import (
	"errors"
	"fmt"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
	"github.com/rs/zerolog"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// A rainbow table is a set of hash/reduce chains persisted by their endpoints only; everything
// between start and end is regenerated on demand. All chains of one table share the metadata
// below, and that metadata is the single source of truth: algorithm and parameters are never
// taken from ambient configuration.

// ErrAlgorithmMismatch reports targets hashed under a different algorithm or different
// parameters than the table was built with.
var ErrAlgorithmMismatch = errors.New("algorithm mismatch")

// Chain is one persisted chain endpoint pair. Replaying hash→reduce NumLinks times from Start
// reproduces End exactly.
type Chain struct {
	Start, End string
}

// Table is a set of chains plus the build metadata they all share.
type Table struct {
	Algorithm hashes.Algorithm
	Params    hashes.Params
	Alphabet  *space.Alphabet
	Length    int
	NumLinks  int
	Chains    []Chain
}

// HashRecord is one target digest paired with the algorithm (and parameters) that produced it.
type HashRecord struct {
	Digest    []byte
	Algorithm hashes.Algorithm
	Params    hashes.Params
}

var log = zerolog.Nop()

// SetLogger routes build and crack progress through l. The default logger discards everything.
func SetLogger(l zerolog.Logger) { log = l }

// CompatibleWith checks that digests produced under (a, p) can be searched in t. Parameters
// are compared bit-exact, salt included: a table built at one scrypt cost is meaningless
// against hashes built at another.
func (t *Table) CompatibleWith(a hashes.Algorithm, p hashes.Params) error {
	if a != t.Algorithm {
		return fmt.Errorf("%w: table built with %v, targets hashed with %v", ErrAlgorithmMismatch, t.Algorithm, a)
	}
	if !p.Equal(t.Params) {
		return fmt.Errorf("%w: %v parameters differ between table and targets", ErrAlgorithmMismatch, a)
	}
	return nil
}

// CheckAlphabet fails unless alpha matches the alphabet t was built with, symbol for symbol.
func (t *Table) CheckAlphabet(alpha *space.Alphabet) error {
	if !t.Alphabet.Equal(alpha) {
		return fmt.Errorf("%w: table alphabet has %d symbols, supplied alphabet %d or differing order",
			space.ErrAlphabetMismatch, t.Alphabet.Size(), alpha.Size())
	}
	return nil
}

// EndIndex maps every end password to the chains it terminates. Distinct chains can share an
// end password, so the value is a list. Built once per table and shared read-only by all
// crack workers.
func (t *Table) EndIndex() map[string][]int {
	index := make(map[string][]int, len(t.Chains))
	for i, c := range t.Chains {
		index[c.End] = append(index[c.End], i)
	}
	return index
}
