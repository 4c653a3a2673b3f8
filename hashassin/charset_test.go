package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

func TestParseCharset(t *testing.T) {
	alpha, err := parseCharset("ascii")
	require.NoError(t, err)
	require.Equal(t, 95, alpha.Size())

	alpha, err = parseCharset("lowercase")
	require.NoError(t, err)
	require.Equal(t, 26, alpha.Size())

	alpha, err = parseCharset("range:0x41-0x5A")
	require.NoError(t, err)
	require.Equal(t, 26, alpha.Size())
	require.True(t, alpha.Contains('A'))
	require.False(t, alpha.Contains('a'))

	alpha, err = parseCharset("set:abc123")
	require.NoError(t, err)
	require.Equal(t, 6, alpha.Size())

	for _, bad := range []string{"qwerty", "range:10", "range:x-y", "set:", "range:0x5A-0x41"} {
		_, err = parseCharset(bad)
		require.ErrorIs(t, err, errUsage, bad)
	}
}

func TestReadPasswords(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("abcd\nwxyz\nmnop\n"), 0o644))
	passwords, length, err := readPasswords(good)
	require.NoError(t, err)
	require.Equal(t, []string{"abcd", "wxyz", "mnop"}, passwords)
	require.Equal(t, 4, length)

	/* Rune count, not byte count: multi-byte symbols still count as one. */
	unicode := filepath.Join(dir, "unicode.txt")
	require.NoError(t, os.WriteFile(unicode, []byte("日本語デ\nabcd\n"), 0o644))
	_, length, err = readPasswords(unicode)
	require.NoError(t, err)
	require.Equal(t, 4, length)

	uneven := filepath.Join(dir, "uneven.txt")
	require.NoError(t, os.WriteFile(uneven, []byte("abcd\nwxy\n"), 0o644))
	_, _, err = readPasswords(uneven)
	require.ErrorIs(t, err, errUsage)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, _, err = readPasswords(empty)
	require.ErrorIs(t, err, errUsage)
}
