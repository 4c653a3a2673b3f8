package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// Shared plumbing for the two on-disk formats. Both are big-endian, carry a fixed magic
// marker and format version, record the full algorithm parameters in the header, and end in a
// BLAKE3-256 trailer over everything before it. Decoding validates every declared bound
// before trusting the body; a violation names the invariant it broke.

// Version is the current format version of both file kinds. Version 1 was the legacy
// charset-size/offset layout and is no longer readable; the reduction function's
// byte-to-symbol mapping is versioned together with this number.
const Version = 2

// TrailerLen is the length of the BLAKE3-256 integrity trailer.
const TrailerLen = 32

var (
	// ErrCorruptTableFile reports a structurally invalid rainbow table file.
	ErrCorruptTableFile = errors.New("corrupt rainbow table file")
	// ErrCorruptHashFile reports a structurally invalid hash file.
	ErrCorruptHashFile = errors.New("corrupt hash file")
	// ErrUnsupportedFormatVersion reports a file written under a format version this build
	// cannot read.
	ErrUnsupportedFormatVersion = errors.New("unsupported format version")
)

// cursor walks a decoded buffer, failing loudly on truncation instead of returning partial
// reads.
type cursor struct {
	buf  []byte
	off  int
	kind error
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.off+n > len(c.buf) {
		return nil, fmt.Errorf("%w: truncated at byte %d, need %d more", c.kind, c.off, c.off+n-len(c.buf))
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *cursor) remaining() int { return len(c.buf) - c.off }

// putParams appends the algorithm parameter block. Fixed-width algorithms contribute nothing;
// scrypt writes costs, key length, and the salt verbatim so they round-trip bit-exact.
func putParams(buf []byte, a hashes.Algorithm, p hashes.Params) []byte {
	if a != hashes.Scrypt {
		return buf
	}
	buf = append(buf, p.LogN)
	buf = binary.BigEndian.AppendUint32(buf, p.R)
	buf = binary.BigEndian.AppendUint32(buf, p.P)
	buf = binary.BigEndian.AppendUint32(buf, p.KeyLen)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(p.Salt)))
	return append(buf, p.Salt...)
}

func readParams(c *cursor, a hashes.Algorithm) (hashes.Params, error) {
	var p hashes.Params
	if a != hashes.Scrypt {
		return p, nil
	}
	var err error
	if p.LogN, err = c.u8(); err != nil {
		return p, err
	}
	if p.R, err = c.u32(); err != nil {
		return p, err
	}
	if p.P, err = c.u32(); err != nil {
		return p, err
	}
	if p.KeyLen, err = c.u32(); err != nil {
		return p, err
	}
	saltLen, err := c.u16()
	if err != nil {
		return p, err
	}
	salt, err := c.take(int(saltLen))
	if err != nil {
		return p, err
	}
	p.Salt = append([]byte(nil), salt...)
	if err := p.Validate(a); err != nil {
		return p, fmt.Errorf("%w: %v", c.kind, err)
	}
	return p, nil
}

// symbolWidth is the fixed byte count per encoded symbol index: the minimum that can
// represent every index of an alphabet of size n.
func symbolWidth(n int) int {
	switch {
	case n <= 1<<8:
		return 1
	case n <= 1<<16:
		return 2
	case n <= 1<<24:
		return 3
	}
	return 4
}

func putIndex(buf []byte, idx uint32, width int) []byte {
	for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
		buf = append(buf, byte(idx>>shift))
	}
	return buf
}

func readIndex(c *cursor, width int) (uint32, error) {
	b, err := c.take(width)
	if err != nil {
		return 0, err
	}
	var idx uint32
	for _, x := range b {
		idx = idx<<8 | uint32(x)
	}
	return idx, nil
}
