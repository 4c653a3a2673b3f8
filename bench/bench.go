package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dterei/gotsc"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
/* This tool measures single-chain build cost per algorithm: TSC cycles and wall-clock links
per second. Run it before picking num-links for a production table. */

const links = 1000

func chain(name string, a hashes.Algorithm, p hashes.Params, n int) {
	alpha := space.ASCII()
	overhead := gotsc.TSCOverhead()

	start := gotsc.BenchStart()
	t := time.Now()
	_, err := rainbow.BuildChain("abcdefgh", a, p, alpha, 8, n)
	wall := time.Since(t)
	end := gotsc.BenchEnd()
	if err != nil {
		panic(err)
	}

	cycles := (end - start - overhead) / uint64(n)
	speed := float64(n) / wall.Seconds()
	fmt.Printf(name+"  %12d cycles/link  %12.0f links/s\n", cycles, speed)
}

func main() {
	fmt.Printf("Running benchmarks!\n\n" +
		"Function:          Cost:              Speed:\n")

	t := time.Now()
	scrypt, err := hashes.DefaultScryptParams()
	if err != nil {
		panic(err)
	}
	chain("md5     ", hashes.MD5, hashes.Params{}, links)
	chain("sha256  ", hashes.SHA256, hashes.Params{}, links)
	chain("sha3-512", hashes.SHA3_512, hashes.Params{}, links)
	/* Memory-hard on purpose; 1000 links of scrypt would take minutes. */
	chain("scrypt  ", hashes.Scrypt, scrypt, links/100)

	fmt.Printf("\nFinished in %s on %s/%s.\n", time.Since(t), runtime.GOOS, runtime.GOARCH)
}
