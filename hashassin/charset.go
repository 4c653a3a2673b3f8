package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

// parseCharset resolves the --charset flag. Accepted forms:
//
//	ascii           printable ASCII, code points 32–126
//	lowercase       a–z
//	range:LO-HI     all code points LO through HI (decimal or 0x-prefixed)
//	set:SYMBOLS     the literal symbols given, in order
func parseCharset(s string) (*space.Alphabet, error) {
	switch {
	case s == "ascii":
		return space.ASCII(), nil
	case s == "lowercase":
		return space.Lowercase(), nil
	case strings.HasPrefix(s, "range:"):
		spec := strings.TrimPrefix(s, "range:")
		lo, hi, ok := strings.Cut(spec, "-")
		if !ok {
			return nil, fmt.Errorf("%w: --charset range wants LO-HI, got %q", errUsage, spec)
		}
		loCP, err := strconv.ParseUint(lo, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: --charset range start %q: %v", errUsage, lo, err)
		}
		hiCP, err := strconv.ParseUint(hi, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: --charset range end %q: %v", errUsage, hi, err)
		}
		alpha, err := space.Range(rune(loCP), rune(hiCP))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		return alpha, nil
	case strings.HasPrefix(s, "set:"):
		alpha, err := space.NewAlphabet([]rune(strings.TrimPrefix(s, "set:")))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		return alpha, nil
	}
	return nil, fmt.Errorf("%w: unknown charset %q", errUsage, s)
}
