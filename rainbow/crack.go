package rainbow

import (
	"bytes"
	"sync"
	"time"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// Cracking hypothesizes, for each target digest, every chain position it could occupy,
// fast-forwards to the end password that position implies, and verifies endpoint hits by
// replaying the matched chain from its start. End passwords are not unique across chains, so
// an endpoint hit is only a candidate until the replay reproduces the target digest.

// Crack searches table for the passwords behind targets, partitioning targets across threads
// workers. The result maps target index to recovered password; absent indices were not found,
// which is a normal outcome, not an error. Metadata disagreement between any target and the
// table fails the whole operation.
func Crack(targets []HashRecord, t *Table, threads int) (map[int]string, error) {
	for i := range targets {
		if err := t.CompatibleWith(targets[i].Algorithm, targets[i].Params); err != nil {
			return nil, err
		}
	}
	if threads < 1 {
		threads = 1
	}
	if threads > len(targets) && len(targets) > 0 {
		threads = len(targets)
	}

	start := time.Now()
	log.Info().Int("targets", len(targets)).Int("chains", len(t.Chains)).Int("threads", threads).
		Msg("cracking")

	index := t.EndIndex()
	found := make([]bool, len(targets))
	recovered := make([]string, len(targets))

	var wg sync.WaitGroup
	per := (len(targets) + threads - 1) / threads
	for w := 0; w < threads; w++ {
		lo := w * per
		hi := lo + per
		if hi > len(targets) {
			hi = len(targets)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if pw, ok := t.search(targets[i].Digest, index); ok {
					found[i], recovered[i] = true, pw
					log.Debug().Int("target", i).Msg("password recovered")
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	results := make(map[int]string)
	for i, ok := range found {
		if ok {
			results[i] = recovered[i]
		}
	}
	log.Info().Int("recovered", len(results)).Int("missed", len(targets)-len(results)).
		Dur("elapsed", time.Since(start)).Msg("crack finished")
	return results, nil
}

// search runs the per-digest position scan. Later positions are cheaper to fast-forward, so
// the scan walks from the last link back to the first.
func (t *Table) search(digest []byte, index map[string][]int) (string, bool) {
	for pos := t.NumLinks - 1; pos >= 0; pos-- {
		/* Hypothesize digest was produced at link pos; derive the chain end that implies. */
		current := space.Reduce(digest, t.Alphabet, t.Length, pos)
		for link := pos + 1; link < t.NumLinks; link++ {
			d, err := hashes.Sum([]byte(current), t.Algorithm, t.Params)
			if err != nil {
				return "", false
			}
			current = space.Reduce(d, t.Alphabet, t.Length, link)
		}
		for _, ci := range index[current] {
			if pw, ok := t.replay(t.Chains[ci].Start, digest); ok {
				return pw, true
			}
			/* False positive: shared end password, digest absent from this chain. */
		}
	}
	return "", false
}

// replay walks a chain forward from start looking for the link whose input hashes to digest.
func (t *Table) replay(start string, digest []byte) (string, bool) {
	current := start
	for link := 0; link < t.NumLinks; link++ {
		d, err := hashes.Sum([]byte(current), t.Algorithm, t.Params)
		if err != nil {
			return "", false
		}
		if bytes.Equal(d, digest) {
			return current, true
		}
		current = space.Reduce(d, t.Alphabet, t.Length, link)
	}
	return "", false
}
