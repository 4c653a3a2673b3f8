package rainbow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// Chain building is embarrassingly parallel: every seed is an independent hash→reduce loop
// with no shared mutable state, so workers only synchronize at the final merge.

// BuildChain computes the chain seeded by start: numLinks alternating hash/reduce steps.
// Identical inputs always produce the identical end password; cracking depends on that.
func BuildChain(start string, a hashes.Algorithm, p hashes.Params, alpha *space.Alphabet,
	length, numLinks int) (Chain, error) {
	if err := alpha.Check(start, length); err != nil {
		return Chain{}, err
	}
	current := start
	for i := 0; i < numLinks; i++ {
		digest, err := hashes.Sum([]byte(current), a, p)
		if err != nil {
			return Chain{}, err
		}
		current = space.Reduce(digest, alpha, length, i)
	}
	return Chain{Start: start, End: current}, nil
}

// BuildTable builds one chain per seed, statically partitioned across threads workers
// (threads < 1 reads as 1). The first malformed seed aborts the whole build: a table with
// silent gaps is worse than a clear failure.
func BuildTable(seeds []string, a hashes.Algorithm, p hashes.Params, alpha *space.Alphabet,
	length, numLinks, threads int) (*Table, error) {
	if err := p.Validate(a); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed passwords", space.ErrInvalidSeedPassword)
	}
	if threads < 1 {
		threads = 1
	}
	if threads > len(seeds) {
		threads = len(seeds)
	}

	start := time.Now()
	log.Info().Int("seeds", len(seeds)).Int("links", numLinks).Int("threads", threads).
		Stringer("algorithm", a).Msg("building rainbow table")

	chains := make([]Chain, len(seeds))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	/* Contiguous slices per worker; chain cost is near-uniform, stragglers are acceptable. */
	per := (len(seeds) + threads - 1) / threads
	for w := 0; w < threads; w++ {
		lo := w * per
		hi := lo + per
		if hi > len(seeds) {
			hi = len(seeds)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if ctx.Err() != nil {
					return
				}
				c, err := BuildChain(seeds[i], a, p, alpha, length, numLinks)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				chains[i] = c
			}
		}(lo, hi)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	log.Info().Int("chains", len(chains)).Dur("elapsed", time.Since(start)).
		Msg("rainbow table built")
	return &Table{
		Algorithm: a,
		Params:    p,
		Alphabet:  alpha,
		Length:    length,
		NumLinks:  numLinks,
		Chains:    chains,
	}, nil
}
