package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
	"github.com/zeebo/blake3"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

// tableMagic marks rainbow table files.
var tableMagic = []byte("rainbowtable")

// EncodeTable writes t in the versioned binary table format:
//
//	magic[12] | version u8 | algorithm u8 | params | passwordLen u16 | numLinks u32 |
//	symbolCount u32 | symbolsLen u32 | symbols utf8 | chainCount u64 |
//	chainCount × (start, end) symbol indices | blake3-256 trailer
//
// Each symbol index occupies the minimal fixed width (1–4 bytes) for the alphabet size, so
// alphabets beyond 255 symbols encode without truncation.
func EncodeTable(w io.Writer, t *rainbow.Table) error {
	if t.Length < 1 || t.Length > math.MaxUint16 {
		return fmt.Errorf("%w: password length %d outside the format's [1,%d]",
			ErrCorruptTableFile, t.Length, math.MaxUint16)
	}
	if t.NumLinks < 0 || uint64(t.NumLinks) > math.MaxUint32 {
		return fmt.Errorf("%w: num links %d outside the format's [0,%d]",
			ErrCorruptTableFile, t.NumLinks, uint64(math.MaxUint32))
	}
	symbols := string(t.Alphabet.Symbols())
	buf := make([]byte, 0, 64+len(symbols)+2*t.Length*len(t.Chains))

	buf = append(buf, tableMagic...)
	buf = append(buf, Version, uint8(t.Algorithm))
	buf = putParams(buf, t.Algorithm, t.Params)
	buf = binary.BigEndian.AppendUint16(buf, uint16(t.Length))
	buf = binary.BigEndian.AppendUint32(buf, uint32(t.NumLinks))
	buf = binary.BigEndian.AppendUint32(buf, uint32(t.Alphabet.Size()))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(symbols)))
	buf = append(buf, symbols...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(t.Chains)))

	width := symbolWidth(t.Alphabet.Size())
	for i := range t.Chains {
		for _, pw := range [2]string{t.Chains[i].Start, t.Chains[i].End} {
			indices, err := t.Alphabet.Indices(pw)
			if err != nil {
				return fmt.Errorf("%w: chain %d: %v", ErrCorruptTableFile, i, err)
			}
			if len(indices) != t.Length {
				return fmt.Errorf("%w: chain %d holds %d symbols, table declares %d",
					ErrCorruptTableFile, i, len(indices), t.Length)
			}
			for _, idx := range indices {
				buf = putIndex(buf, idx, width)
			}
		}
	}

	sum := blake3.Sum256(buf)
	buf = append(buf, sum[:]...)
	_, err := w.Write(buf)
	return err
}

// DecodeTable reads a table written by EncodeTable, validating the magic marker, version,
// trailer, alphabet, and every symbol index before returning anything.
func DecodeTable(r io.Reader) (*rainbow.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTableFile, err)
	}
	if len(raw) < len(tableMagic)+TrailerLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than any valid table", ErrCorruptTableFile, len(raw))
	}
	if !bytes.HasPrefix(raw, tableMagic) {
		return nil, fmt.Errorf("%w: bad magic marker", ErrCorruptTableFile)
	}
	body, trailer := raw[:len(raw)-TrailerLen], raw[len(raw)-TrailerLen:]
	if sum := blake3.Sum256(body); !bytes.Equal(sum[:], trailer) {
		return nil, fmt.Errorf("%w: integrity trailer does not match contents", ErrCorruptTableFile)
	}

	c := &cursor{buf: body, off: len(tableMagic), kind: ErrCorruptTableFile}
	version, err := c.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%w: table version %d, this build reads %d", ErrUnsupportedFormatVersion, version, Version)
	}
	algByte, err := c.u8()
	if err != nil {
		return nil, err
	}
	alg := hashes.Algorithm(algByte)
	if _, err := hashes.Parse(alg.String()); err != nil {
		return nil, fmt.Errorf("%w: unknown algorithm tag %d", ErrCorruptTableFile, algByte)
	}
	params, err := readParams(c, alg)
	if err != nil {
		return nil, err
	}
	length, err := c.u16()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, fmt.Errorf("%w: password length 0", ErrCorruptTableFile)
	}
	numLinks, err := c.u32()
	if err != nil {
		return nil, err
	}
	symbolCount, err := c.u32()
	if err != nil {
		return nil, err
	}
	symbolsLen, err := c.u32()
	if err != nil {
		return nil, err
	}
	symbolBytes, err := c.take(int(symbolsLen))
	if err != nil {
		return nil, err
	}
	symbols := []rune(string(symbolBytes))
	if uint32(len(symbols)) != symbolCount {
		return nil, fmt.Errorf("%w: header declares %d symbols, symbol list holds %d",
			ErrCorruptTableFile, symbolCount, len(symbols))
	}
	alpha, err := space.NewAlphabet(symbols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptTableFile, err)
	}

	chainCount, err := c.u64()
	if err != nil {
		return nil, err
	}
	width := symbolWidth(alpha.Size())
	recordLen := 2 * int(length) * width
	/* Bound the count in uint64 space first: a forged count can wrap int multiplication to
	a small product and slip past the length check into a huge allocation. */
	if chainCount > uint64(c.remaining())/uint64(recordLen) {
		return nil, fmt.Errorf("%w: header declares %d chains of %d bytes, body holds only %d bytes",
			ErrCorruptTableFile, chainCount, recordLen, c.remaining())
	}
	if got, want := c.remaining(), int(chainCount)*recordLen; got != want {
		return nil, fmt.Errorf("%w: chain record count mismatch: header declares %d chains (%d bytes), body holds %d bytes",
			ErrCorruptTableFile, chainCount, want, got)
	}

	chains := make([]rainbow.Chain, chainCount)
	indices := make([]uint32, length)
	for i := range chains {
		var pair [2]string
		for half := 0; half < 2; half++ {
			for j := range indices {
				if indices[j], err = readIndex(c, width); err != nil {
					return nil, err
				}
			}
			pw, err := alpha.FromIndices(indices)
			if err != nil {
				return nil, fmt.Errorf("%w: chain %d: %v", ErrCorruptTableFile, i, err)
			}
			pair[half] = pw
		}
		chains[i] = rainbow.Chain{Start: pair[0], End: pair[1]}
	}

	return &rainbow.Table{
		Algorithm: alg,
		Params:    params,
		Alphabet:  alpha,
		Length:    int(length),
		NumLinks:  int(numLinks),
		Chains:    chains,
	}, nil
}
