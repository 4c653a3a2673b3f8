package space

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aead/chacha20/chacha"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// Password generation pulls uniform symbols out of a ChaCha keystream. A crypto/rand seed
// gives fresh passwords per run; a fixed seed gives reproducible sequences for tests.

const ksBufLen = 1024

// Keystream is a deterministic uniform random source over a ChaCha20 keystream.
type Keystream struct {
	stream *chacha.Cipher
	buf    [ksBufLen]byte
	pos    int
}

// NewKeystream returns a keystream seeded from crypto/rand.
func NewKeystream() (*Keystream, error) {
	var key [chacha.KeySize]byte
	var nonce [chacha.XNonceSize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("keystream seed: %w", err)
	}
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("keystream seed: %w", err)
	}
	return NewSeededKeystream(key, nonce)
}

// NewSeededKeystream returns the keystream determined entirely by key and nonce.
func NewSeededKeystream(key [chacha.KeySize]byte, nonce [chacha.XNonceSize]byte) (*Keystream, error) {
	c, err := chacha.NewCipher(nonce[:], key[:], 20)
	if err != nil {
		return nil, fmt.Errorf("keystream init: %w", err)
	}
	k := &Keystream{stream: c, pos: ksBufLen}
	return k, nil
}

func (k *Keystream) refill() {
	for i := range k.buf {
		k.buf[i] = 0
	}
	k.stream.XORKeyStream(k.buf[:], k.buf[:])
	k.pos = 0
}

// Uint64 returns the next 8 keystream bytes as a big-endian word.
func (k *Keystream) Uint64() uint64 {
	if k.pos > ksBufLen-8 {
		k.refill()
	}
	b := k.buf[k.pos:]
	k.pos += 8
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// Uintn returns a uniform value in [0, n) by rejection sampling, so symbol draws stay unbiased
// for any alphabet size.
func (k *Keystream) Uintn(n uint64) uint64 {
	if n == 0 {
		panic("space: Uintn with n == 0")
	}
	if n&(n-1) == 0 {
		return k.Uint64() & (n - 1)
	}
	/* Reject draws below 2^64 mod n; the remaining range is an exact multiple of n. */
	reject := (-n) % n
	v := k.Uint64()
	for v < reject {
		v = k.Uint64()
	}
	return v % n
}

// GeneratePassword draws length independent uniform symbols from alpha.
func GeneratePassword(alpha *Alphabet, length int, rng *Keystream) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("%w: password length %d below 1", ErrInvalidSeedPassword, length)
	}
	n := uint64(alpha.Size())
	var b strings.Builder
	b.Grow(length * utf8.RuneLen(alpha.symbols[len(alpha.symbols)-1]))
	for i := 0; i < length; i++ {
		b.WriteRune(alpha.Rune(uint32(rng.Uintn(n))))
	}
	return b.String(), nil
}
