package space

import (
	"strings"

	"github.com/zeebo/xxh3"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// The reduction function maps a digest back into the password space. Its byte-to-symbol
// mapping is part of the table format: change it and every existing table becomes garbage, so
// the mapping below is versioned alongside the codec's format version.

// Reduce deterministically maps digest plus the chain link index to a password of length
// symbols from alpha. The link index seeds the extraction so every link of a chain uses a
// distinct reduction function; the seed also separates symbol positions, which lets short
// digests (16 bytes) cover long passwords and alphabets wider than 255 symbols without bias
// beyond a 64-bit wide modulo.
func Reduce(digest []byte, alpha *Alphabet, length int, link int) string {
	n := uint64(alpha.Size())
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		seed := uint64(link)<<20 | uint64(i)
		b.WriteRune(alpha.Rune(uint32(xxh3.HashSeed(digest, seed) % n)))
	}
	return b.String()
}
