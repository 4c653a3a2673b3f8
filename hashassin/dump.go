package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/codec"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/spf13/cobra"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// The dump commands render the binary formats for human eyes: a header summary followed by
// one record per line.

func init() {
	dumpHashes := &cobra.Command{
		Use:   "dump-hashes",
		Short: "Print a hash file's header and digests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(pInFile)
			if err != nil {
				return err
			}
			defer f.Close()
			hf, err := codec.DecodeHashes(f)
			if err != nil {
				return err
			}
			fmt.Println("VERSION:", codec.Version)
			fmt.Println("ALGORITHM:", hf.Algorithm)
			printParams(hf.Algorithm, hf.Params)
			fmt.Println("PASSWORD LENGTH:", hf.PasswordLen)
			for _, d := range hf.Digests {
				fmt.Println(hex.EncodeToString(d))
			}
			return nil
		},
	}
	dumpHashes.Flags().StringVar(&pInFile, "in-file", "", "hash file to read")
	_ = dumpHashes.MarkFlagRequired("in-file")

	dumpTable := &cobra.Command{
		Use:   "dump-rainbow-table",
		Short: "Print a rainbow table's header and chain endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(pInFile)
			if err != nil {
				return err
			}
			defer f.Close()
			t, err := codec.DecodeTable(f)
			if err != nil {
				return err
			}
			fmt.Println("VERSION:", codec.Version)
			fmt.Println("ALGORITHM:", t.Algorithm)
			printParams(t.Algorithm, t.Params)
			fmt.Println("PASSWORD LENGTH:", t.Length)
			fmt.Println("ALPHABET SIZE:", t.Alphabet.Size())
			fmt.Println("NUM LINKS:", t.NumLinks)
			fmt.Println("NUM CHAINS:", len(t.Chains))
			for _, c := range t.Chains {
				fmt.Printf("%s\t%s\n", c.Start, c.End)
			}
			return nil
		},
	}
	dumpTable.Flags().StringVar(&pInFile, "in-file", "", "table file to read")
	_ = dumpTable.MarkFlagRequired("in-file")

	root.AddCommand(dumpHashes, dumpTable)
}

func printParams(a hashes.Algorithm, p hashes.Params) {
	if a != hashes.Scrypt {
		return
	}
	fmt.Printf("SCRYPT PARAMS: ln=%d,r=%d,p=%d,len=%d\n", p.LogN, p.R, p.P, p.KeyLen)
	fmt.Println("SCRYPT SALT:", hex.EncodeToString(p.Salt))
}
