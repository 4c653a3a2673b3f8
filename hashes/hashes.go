package hashes

import (
	"bytes"
	"crypto/md5"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// This file implements the hash abstraction shared by the chain, codec, and crack layers: a
// closed set of digest algorithms plus the scrypt cost parameters that have to travel with
// every scrypt digest.

// Algorithm selects which digest or KDF produced a hash. The set is closed; Sum and Size
// switch over it exhaustively.
type Algorithm uint8

const (
	MD5 Algorithm = iota + 1
	SHA256
	SHA3_512
	Scrypt
)

var (
	// ErrUnsupportedAlgorithm reports an algorithm tag outside the closed set above.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	// ErrInvalidAlgorithmParams reports scrypt parameters that are absent, out of range, or
	// supplied for an algorithm that takes none.
	ErrInvalidAlgorithmParams = errors.New("invalid algorithm parameters")
)

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA256:
		return "sha256"
	case SHA3_512:
		return "sha3-512"
	case Scrypt:
		return "scrypt"
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// Parse maps the on-disk/CLI algorithm names back to tags.
func Parse(name string) (Algorithm, error) {
	switch name {
	case "md5":
		return MD5, nil
	case "sha256":
		return SHA256, nil
	case "sha3-512":
		return SHA3_512, nil
	case "scrypt":
		return Scrypt, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Params carries the scrypt cost parameters and salt. The zero value means "no parameters"
// and is the only valid Params for the fixed-width algorithms. Params are never implicit:
// a table or hash file records them verbatim and cracking replays them bit-exact.
type Params struct {
	LogN   uint8
	R, P   uint32
	KeyLen uint32
	Salt   []byte
}

// DefaultScryptParams returns the interactive-grade cost setting (N=2^14, r=8, p=1, 32-byte
// key) with a fresh 16-byte salt.
func DefaultScryptParams() (Params, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return Params{}, fmt.Errorf("%w: salt generation: %v", ErrInvalidAlgorithmParams, err)
	}
	return Params{LogN: 14, R: 8, P: 1, KeyLen: 32, Salt: salt}, nil
}

// Zero reports whether p is the no-parameters value.
func (p Params) Zero() bool {
	return p.LogN == 0 && p.R == 0 && p.P == 0 && p.KeyLen == 0 && len(p.Salt) == 0
}

// Equal compares parameters bit-exact, salt included.
func (p Params) Equal(o Params) bool {
	return p.LogN == o.LogN && p.R == o.R && p.P == o.P && p.KeyLen == o.KeyLen &&
		bytes.Equal(p.Salt, o.Salt)
}

// Validate checks p against the requirements of a.
func (p Params) Validate(a Algorithm) error {
	switch a {
	case MD5, SHA256, SHA3_512:
		if !p.Zero() {
			return fmt.Errorf("%w: %v takes no parameters", ErrInvalidAlgorithmParams, a)
		}
		return nil
	case Scrypt:
		switch {
		case p.LogN < 1 || p.LogN > 31:
			return fmt.Errorf("%w: scrypt log2(N) %d outside [1,31]", ErrInvalidAlgorithmParams, p.LogN)
		case p.R < 1 || p.P < 1:
			return fmt.Errorf("%w: scrypt r=%d p=%d must be positive", ErrInvalidAlgorithmParams, p.R, p.P)
		case p.KeyLen < 16:
			return fmt.Errorf("%w: scrypt key length %d below 16", ErrInvalidAlgorithmParams, p.KeyLen)
		case len(p.Salt) == 0:
			return fmt.Errorf("%w: scrypt salt is empty", ErrInvalidAlgorithmParams)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
}

// Size returns the digest width in bytes that Sum will produce for (a, p).
func Size(a Algorithm, p Params) (int, error) {
	switch a {
	case MD5:
		return md5.Size, nil
	case SHA256:
		return sha256.Size, nil
	case SHA3_512:
		return 64, nil
	case Scrypt:
		if err := p.Validate(a); err != nil {
			return 0, err
		}
		return int(p.KeyLen), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
}

// Sum hashes password under a with parameters p. Fixed-width algorithms are pure functions of
// the input; scrypt derives a KeyLen-byte key from (password, p.Salt) at the recorded cost.
func Sum(password []byte, a Algorithm, p Params) ([]byte, error) {
	if err := p.Validate(a); err != nil {
		return nil, err
	}
	switch a {
	case MD5:
		d := md5.Sum(password)
		return d[:], nil
	case SHA256:
		d := sha256.Sum256(password)
		return d[:], nil
	case SHA3_512:
		d := sha3.Sum512(password)
		return d[:], nil
	case Scrypt:
		key, err := scrypt.Key(password, p.Salt, 1<<p.LogN, int(p.R), int(p.P), int(p.KeyLen))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithmParams, err)
		}
		return key, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, a)
}
