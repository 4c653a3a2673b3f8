package hashes

import (
	"context"
	"sync"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

// SumAll hashes every password under (a, p), statically partitioned across threads workers
// (threads < 1 reads as 1). Output order follows input order. The first failure aborts the
// whole batch.
func SumAll(passwords []string, a Algorithm, p Params, threads int) ([][]byte, error) {
	if err := p.Validate(a); err != nil {
		return nil, err
	}
	if len(passwords) == 0 {
		return nil, nil
	}
	if threads < 1 {
		threads = 1
	}
	if threads > len(passwords) {
		threads = len(passwords)
	}

	digests := make([][]byte, len(passwords))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	per := (len(passwords) + threads - 1) / threads
	for w := 0; w < threads; w++ {
		lo := w * per
		hi := lo + per
		if hi > len(passwords) {
			hi = len(passwords)
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
				d, err := Sum([]byte(passwords[i]), a, p)
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				digests[i] = d
			}
		}(lo, hi)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return digests, nil
}
