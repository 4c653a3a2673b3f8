package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/codec"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/p7r0x7/vainpath"
	"github.com/spf13/cobra"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

var pTableFile, pExpectCharset string

func init() {
	crack := &cobra.Command{
		Use:   "crack",
		Short: "Recover passwords from a hash file using a rainbow table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tf, err := os.Open(pTableFile)
			if err != nil {
				return err
			}
			defer tf.Close()
			table, err := codec.DecodeTable(tf)
			if err != nil {
				return err
			}
			if pExpectCharset != "" {
				/* Cracking against a table whose alphabet differs from the operator's
				expectation is meaningless, not merely low-yield. */
				alpha, err := parseCharset(pExpectCharset)
				if err != nil {
					return err
				}
				if err := table.CheckAlphabet(alpha); err != nil {
					return err
				}
			}

			hf, err := os.Open(pInFile)
			if err != nil {
				return err
			}
			defer hf.Close()
			hashFile, err := codec.DecodeHashes(hf)
			if err != nil {
				return err
			}
			if hashFile.PasswordLen != 0 && hashFile.PasswordLen != table.Length {
				return fmt.Errorf("%w: hash file passwords are %d symbols, table passwords %d",
					rainbow.ErrAlgorithmMismatch, hashFile.PasswordLen, table.Length)
			}

			results, err := rainbow.Crack(hashFile.Records(), table, pThreads)
			if err != nil {
				return err
			}

			out, closeOut, err := sink(pOutFile)
			if err != nil {
				return err
			}
			defer closeOut()
			for i, d := range hashFile.Digests {
				if pw, ok := results[i]; ok {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", hex.EncodeToString(d), pw); err != nil {
						return err
					}
				}
			}
			if missed := len(hashFile.Digests) - len(results); missed > 0 {
				log.Warn().Int("missed", missed).Str("table", vainpath.Simplify(pTableFile)).
					Msg("targets not covered by table")
			}
			return nil
		},
	}
	crack.Flags().StringVar(&pInFile, "in-file", "", "hash file holding target digests")
	crack.Flags().StringVar(&pTableFile, "rainbow-table", "", "rainbow table file")
	crack.Flags().StringVar(&pOutFile, "out-file", "", "output path (default stdout)")
	crack.Flags().StringVar(&pExpectCharset, "charset", "", "expected charset; fails if the table was built with another")
	_ = crack.MarkFlagRequired("in-file")
	_ = crack.MarkFlagRequired("rainbow-table")

	root.AddCommand(crack)
}
