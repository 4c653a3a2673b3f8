package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/zeebo/blake3"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

// hashMagic marks hash files.
var hashMagic = []byte("hashassin")

// HashFile is an ordered sequence of digests sharing one algorithm and one parameter set.
// PasswordLen records the rune length of the hashed passwords when known; zero means unknown.
type HashFile struct {
	Algorithm   hashes.Algorithm
	Params      hashes.Params
	PasswordLen int
	Digests     [][]byte
}

// Records converts f into crack targets, one HashRecord per digest.
func (f *HashFile) Records() []rainbow.HashRecord {
	records := make([]rainbow.HashRecord, len(f.Digests))
	for i, d := range f.Digests {
		records[i] = rainbow.HashRecord{Digest: d, Algorithm: f.Algorithm, Params: f.Params}
	}
	return records
}

// EncodeHashes writes f in the versioned binary hash-file format:
//
//	magic[9] | version u8 | algorithm u8 | params | passwordLen u16 | digestLen u32 |
//	count u64 | count × digestLen raw digests | blake3-256 trailer
func EncodeHashes(w io.Writer, f *HashFile) error {
	digestLen, err := hashes.Size(f.Algorithm, f.Params)
	if err != nil {
		return err
	}
	if f.PasswordLen < 0 || f.PasswordLen > math.MaxUint16 {
		return fmt.Errorf("%w: password length %d outside the format's [0,%d]",
			ErrCorruptHashFile, f.PasswordLen, math.MaxUint16)
	}
	buf := make([]byte, 0, 64+len(f.Digests)*digestLen)
	buf = append(buf, hashMagic...)
	buf = append(buf, Version, uint8(f.Algorithm))
	buf = putParams(buf, f.Algorithm, f.Params)
	buf = binary.BigEndian.AppendUint16(buf, uint16(f.PasswordLen))
	buf = binary.BigEndian.AppendUint32(buf, uint32(digestLen))
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(f.Digests)))
	for i, d := range f.Digests {
		if len(d) != digestLen {
			return fmt.Errorf("%w: digest %d is %d bytes, %v produces %d",
				ErrCorruptHashFile, i, len(d), f.Algorithm, digestLen)
		}
		buf = append(buf, d...)
	}
	sum := blake3.Sum256(buf)
	buf = append(buf, sum[:]...)
	_, err = w.Write(buf)
	return err
}

// DecodeHashes reads a hash file written by EncodeHashes, applying the same validation
// discipline as DecodeTable.
func DecodeHashes(r io.Reader) (*HashFile, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHashFile, err)
	}
	if len(raw) < len(hashMagic)+TrailerLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than any valid hash file", ErrCorruptHashFile, len(raw))
	}
	if !bytes.HasPrefix(raw, hashMagic) {
		return nil, fmt.Errorf("%w: bad magic marker", ErrCorruptHashFile)
	}
	body, trailer := raw[:len(raw)-TrailerLen], raw[len(raw)-TrailerLen:]
	if sum := blake3.Sum256(body); !bytes.Equal(sum[:], trailer) {
		return nil, fmt.Errorf("%w: integrity trailer does not match contents", ErrCorruptHashFile)
	}

	c := &cursor{buf: body, off: len(hashMagic), kind: ErrCorruptHashFile}
	version, err := c.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: hash file version %d, this build reads %d", ErrUnsupportedFormatVersion, version, Version)
	}
	algByte, err := c.u8()
	if err != nil {
		return nil, err
	}
	alg := hashes.Algorithm(algByte)
	if _, err := hashes.Parse(alg.String()); err != nil {
		return nil, fmt.Errorf("%w: unknown algorithm tag %d", ErrCorruptHashFile, algByte)
	}
	params, err := readParams(c, alg)
	if err != nil {
		return nil, err
	}
	passwordLen, err := c.u16()
	if err != nil {
		return nil, err
	}
	digestLen, err := c.u32()
	if err != nil {
		return nil, err
	}
	want, err := hashes.Size(alg, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHashFile, err)
	}
	if int(digestLen) != want {
		return nil, fmt.Errorf("%w: header declares %d-byte digests, %v produces %d",
			ErrCorruptHashFile, digestLen, alg, want)
	}
	count, err := c.u64()
	if err != nil {
		return nil, err
	}
	/* Same overflow discipline as DecodeTable: bound in uint64 space before allocating. */
	if count > uint64(c.remaining())/uint64(digestLen) {
		return nil, fmt.Errorf("%w: header declares %d digests of %d bytes, body holds only %d bytes",
			ErrCorruptHashFile, count, digestLen, c.remaining())
	}
	if got, want := c.remaining(), int(count)*int(digestLen); got != want {
		return nil, fmt.Errorf("%w: digest count mismatch: header declares %d digests (%d bytes), body holds %d bytes",
			ErrCorruptHashFile, count, want, got)
	}

	digests := make([][]byte, count)
	for i := range digests {
		d, err := c.take(int(digestLen))
		if err != nil {
			return nil, err
		}
		digests[i] = append([]byte(nil), d...)
	}
	return &HashFile{
		Algorithm:   alg,
		Params:      params,
		PasswordLen: int(passwordLen),
		Digests:     digests,
	}, nil
}
