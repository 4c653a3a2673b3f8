package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/codec"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
	"github.com/p7r0x7/vainpath"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

var errUsage = errors.New("invalid arguments")

func isUsageError(err error) bool { return errors.Is(err, errUsage) }

var (
	pNum, pChars, pNumLinks       int
	pInFile, pOutFile, pAlgorithm string
	pCharset                      string
	pLogN                         uint8
	pScryptR, pScryptP, pKeyLen   uint32
	pSaltHex                      string
)

// scryptFlags registers the scrypt cost flags shared by every hashing command.
func scryptFlags(fs *pflag.FlagSet) {
	fs.Uint8Var(&pLogN, "scrypt-log-n", 14, "scrypt work factor as log2(N)")
	fs.Uint32Var(&pScryptR, "scrypt-r", 8, "scrypt block size")
	fs.Uint32Var(&pScryptP, "scrypt-p", 1, "scrypt parallelism")
	fs.Uint32Var(&pKeyLen, "scrypt-key-len", 32, "scrypt output length in bytes")
	fs.StringVar(&pSaltHex, "scrypt-salt", "", "scrypt salt in hex (default random)")
}

// algorithmParams resolves the --algorithm flag plus scrypt flags into a validated pair.
func algorithmParams() (hashes.Algorithm, hashes.Params, error) {
	alg, err := hashes.Parse(pAlgorithm)
	if err != nil {
		return 0, hashes.Params{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if alg != hashes.Scrypt {
		return alg, hashes.Params{}, nil
	}
	p := hashes.Params{LogN: pLogN, R: pScryptR, P: pScryptP, KeyLen: pKeyLen}
	if pSaltHex == "" {
		d, err := hashes.DefaultScryptParams()
		if err != nil {
			return 0, hashes.Params{}, err
		}
		p.Salt = d.Salt
	} else if p.Salt, err = hex.DecodeString(pSaltHex); err != nil {
		return 0, hashes.Params{}, fmt.Errorf("%w: --scrypt-salt: %v", errUsage, err)
	}
	if err := p.Validate(alg); err != nil {
		return 0, hashes.Params{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	return alg, p, nil
}

func init() {
	genPasswords := &cobra.Command{
		Use:   "gen-passwords",
		Short: "Generate random passwords, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pNum < 1 || pChars < 1 {
				return fmt.Errorf("%w: --num and --chars must be at least 1", errUsage)
			}
			alpha, err := parseCharset(pCharset)
			if err != nil {
				return err
			}
			rng, err := space.NewKeystream()
			if err != nil {
				return err
			}
			out, closeOut, err := sink(pOutFile)
			if err != nil {
				return err
			}
			defer closeOut()
			for i := 0; i < pNum; i++ {
				pw, err := space.GeneratePassword(alpha, pChars, rng)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(out, pw); err != nil {
					return err
				}
			}
			log.Info().Int("count", pNum).Int("chars", pChars).Msg("passwords generated")
			return nil
		},
	}
	genPasswords.Flags().IntVar(&pNum, "num", 1, "number of passwords")
	genPasswords.Flags().IntVar(&pChars, "chars", 4, "symbols per password")
	genPasswords.Flags().StringVar(&pOutFile, "out-file", "", "output path (default stdout)")
	genPasswords.Flags().StringVar(&pCharset, "charset", "ascii", "ascii, lowercase, range:LO-HI, or set:SYMBOLS")

	genHashes := &cobra.Command{
		Use:   "gen-hashes",
		Short: "Hash a password list into a binary hash file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, params, err := algorithmParams()
			if err != nil {
				return err
			}
			passwords, length, err := readPasswords(pInFile)
			if err != nil {
				return err
			}
			digests, err := hashes.SumAll(passwords, alg, params, pThreads)
			if err != nil {
				return err
			}
			f, err := os.Create(pOutFile)
			if err != nil {
				return err
			}
			defer f.Close()
			hf := &codec.HashFile{Algorithm: alg, Params: params, PasswordLen: length, Digests: digests}
			if err := codec.EncodeHashes(f, hf); err != nil {
				return err
			}
			log.Info().Int("hashes", len(digests)).Stringer("algorithm", alg).
				Str("out", vainpath.Simplify(pOutFile)).Msg("hash file written")
			return nil
		},
	}
	genHashes.Flags().StringVar(&pInFile, "in-file", "", "password list to hash")
	genHashes.Flags().StringVar(&pOutFile, "out-file", "", "hash file to write")
	genHashes.Flags().StringVar(&pAlgorithm, "algorithm", "", "md5, sha256, sha3-512, or scrypt")
	scryptFlags(genHashes.Flags())
	_ = genHashes.MarkFlagRequired("in-file")
	_ = genHashes.MarkFlagRequired("out-file")
	_ = genHashes.MarkFlagRequired("algorithm")

	genTable := &cobra.Command{
		Use:   "gen-rainbow-table",
		Short: "Build a rainbow table from a seed password list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alg, params, err := algorithmParams()
			if err != nil {
				return err
			}
			if pNumLinks < 1 {
				return fmt.Errorf("%w: --num-links must be at least 1", errUsage)
			}
			alpha, err := parseCharset(pCharset)
			if err != nil {
				return err
			}
			seeds, length, err := readPasswords(pInFile)
			if err != nil {
				return err
			}
			table, err := rainbow.BuildTable(seeds, alg, params, alpha, length, pNumLinks, pThreads)
			if err != nil {
				return err
			}
			f, err := os.Create(pOutFile)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := codec.EncodeTable(f, table); err != nil {
				return err
			}
			log.Info().Int("chains", len(table.Chains)).Int("links", pNumLinks).
				Str("out", vainpath.Simplify(pOutFile)).Msg("rainbow table written")
			return nil
		},
	}
	genTable.Flags().StringVar(&pInFile, "in-file", "", "seed password list")
	genTable.Flags().StringVar(&pOutFile, "out-file", "", "table file to write")
	genTable.Flags().StringVar(&pAlgorithm, "algorithm", "", "md5, sha256, sha3-512, or scrypt")
	genTable.Flags().IntVar(&pNumLinks, "num-links", 100, "hash/reduce links per chain")
	genTable.Flags().StringVar(&pCharset, "charset", "ascii", "ascii, lowercase, range:LO-HI, or set:SYMBOLS")
	scryptFlags(genTable.Flags())
	_ = genTable.MarkFlagRequired("in-file")
	_ = genTable.MarkFlagRequired("out-file")
	_ = genTable.MarkFlagRequired("algorithm")

	root.AddCommand(genPasswords, genHashes, genTable)
}

// sink opens the --out-file target, defaulting to stdout.
func sink(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
