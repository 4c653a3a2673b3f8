package rainbow

import (
	"testing"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/hashes"
	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/space"
	"github.com/stretchr/testify/require"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

var testSeeds = []string{"abcd", "qrst", "mmmm", "zyxw", "hole", "gaps", "tuna", "fish"}

func testTable(t *testing.T, numLinks, threads int) *Table {
	t.Helper()
	table, err := BuildTable(testSeeds, hashes.SHA256, hashes.Params{}, space.Lowercase(),
		4, numLinks, threads)
	require.NoError(t, err)
	return table
}

// digestAt replays a chain to the digest produced at link, returning it with the password
// that produced it.
func digestAt(t *testing.T, table *Table, seed string, link int) ([]byte, string) {
	t.Helper()
	current := seed
	for i := 0; i < link; i++ {
		d, err := hashes.Sum([]byte(current), table.Algorithm, table.Params)
		require.NoError(t, err)
		current = space.Reduce(d, table.Alphabet, table.Length, i)
	}
	d, err := hashes.Sum([]byte(current), table.Algorithm, table.Params)
	require.NoError(t, err)
	return d, current
}

func TestBuildChainIsDeterministic(t *testing.T) {
	alpha := space.Lowercase()
	a, err := BuildChain("abcd", hashes.SHA256, hashes.Params{}, alpha, 4, 100)
	require.NoError(t, err)
	b, err := BuildChain("abcd", hashes.SHA256, hashes.Params{}, alpha, 4, 100)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, "abcd", a.Start)
	require.NoError(t, alpha.Check(a.End, 4))
}

func TestBuildChainRejectsBadSeeds(t *testing.T) {
	alpha := space.Lowercase()
	_, err := BuildChain("abc", hashes.SHA256, hashes.Params{}, alpha, 4, 10)
	require.ErrorIs(t, err, space.ErrInvalidSeedPassword)
	_, err = BuildChain("abcD", hashes.SHA256, hashes.Params{}, alpha, 4, 10)
	require.ErrorIs(t, err, space.ErrInvalidSeedPassword)
}

func TestBuildTableReplayConsistency(t *testing.T) {
	table := testTable(t, 40, 3)
	require.Len(t, table.Chains, len(testSeeds))

	for i, c := range table.Chains {
		require.Equal(t, testSeeds[i], c.Start, "chains must follow seed order")
		replayed, err := BuildChain(c.Start, table.Algorithm, table.Params, table.Alphabet,
			table.Length, table.NumLinks)
		require.NoError(t, err)
		require.Equal(t, c.End, replayed.End)
	}
}

func TestBuildTableFailsFastOnBadSeed(t *testing.T) {
	seeds := append([]string{}, testSeeds...)
	seeds[5] = "nope!"
	_, err := BuildTable(seeds, hashes.SHA256, hashes.Params{}, space.Lowercase(), 4, 40, 2)
	require.ErrorIs(t, err, space.ErrInvalidSeedPassword)
}

func TestCrackRecoversChainPasswords(t *testing.T) {
	table := testTable(t, 30, 2)

	var targets []HashRecord
	var want []string
	for _, tc := range []struct {
		seed string
		link int
	}{
		{"abcd", 0},
		{"qrst", 7},
		{"fish", 29},
	} {
		digest, password := digestAt(t, table, tc.seed, tc.link)
		targets = append(targets, HashRecord{Digest: digest, Algorithm: hashes.SHA256})
		want = append(want, password)
	}

	results, err := Crack(targets, table, 3)
	require.NoError(t, err)
	for i, pw := range want {
		require.Equal(t, pw, results[i], "target %d", i)
	}
}

func TestCrackReportsMissesAsAbsent(t *testing.T) {
	table := testTable(t, 10, 1)

	/* A digest from outside the password space cannot sit on any chain. */
	digest, err := hashes.Sum([]byte("not-a-member"), hashes.SHA256, hashes.Params{})
	require.NoError(t, err)

	results, err := Crack([]HashRecord{{Digest: digest, Algorithm: hashes.SHA256}}, table, 1)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestCrackRejectsFalsePositives(t *testing.T) {
	alpha := space.Lowercase()
	const numLinks = 5

	/* The target digest never appears in the chain, but the chain's end is forged to match
	the fast-forward of the digest at the final link. The endpoint hit must be discarded on
	replay. */
	digest, err := hashes.Sum([]byte("zzzzz"), hashes.SHA256, hashes.Params{})
	require.NoError(t, err)
	forged := Chain{Start: "aaaa", End: space.Reduce(digest, alpha, 4, numLinks-1)}

	table := &Table{
		Algorithm: hashes.SHA256,
		Alphabet:  alpha,
		Length:    4,
		NumLinks:  numLinks,
		Chains:    []Chain{forged},
	}

	results, err := Crack([]HashRecord{{Digest: digest, Algorithm: hashes.SHA256}}, table, 1)
	require.NoError(t, err)
	require.Empty(t, results, "a forged endpoint must not produce a recovered password")
}

func TestCrackRefusesMismatchedMetadata(t *testing.T) {
	table := testTable(t, 10, 1)

	_, err := Crack([]HashRecord{{Digest: make([]byte, 16), Algorithm: hashes.MD5}}, table, 1)
	require.ErrorIs(t, err, ErrAlgorithmMismatch)

	scrypt := hashes.Params{LogN: 4, R: 8, P: 1, KeyLen: 32, Salt: []byte("0123456789abcdef")}
	_, err = Crack([]HashRecord{{Digest: make([]byte, 32), Algorithm: hashes.Scrypt, Params: scrypt}}, table, 1)
	require.ErrorIs(t, err, ErrAlgorithmMismatch)
}

func TestScryptTableRoundTripsThroughCrack(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt chains are deliberately slow")
	}
	params := hashes.Params{LogN: 4, R: 8, P: 1, KeyLen: 32, Salt: []byte("0123456789abcdef")}
	table, err := BuildTable([]string{"abcd", "wxyz"}, hashes.Scrypt, params, space.Lowercase(), 4, 6, 2)
	require.NoError(t, err)

	digest, password := digestAt(t, table, "abcd", 3)
	results, err := Crack([]HashRecord{{Digest: digest, Algorithm: hashes.Scrypt, Params: params}}, table, 1)
	require.NoError(t, err)
	require.Equal(t, password, results[0])

	/* Same costs, different salt: unusable, and flagged as such. */
	other := params
	other.Salt = []byte("fedcba9876543210")
	_, err = Crack([]HashRecord{{Digest: digest, Algorithm: hashes.Scrypt, Params: other}}, table, 1)
	require.ErrorIs(t, err, ErrAlgorithmMismatch)
}

func TestCheckAlphabetRefusesForeignAlphabets(t *testing.T) {
	table := testTable(t, 5, 1)

	require.NoError(t, table.CheckAlphabet(space.Lowercase()))
	require.ErrorIs(t, table.CheckAlphabet(space.ASCII()), space.ErrAlphabetMismatch)

	/* Same symbols, different order: a different alphabet. */
	symbols := table.Alphabet.Symbols()
	reversed := make([]rune, len(symbols))
	for i, r := range symbols {
		reversed[len(symbols)-1-i] = r
	}
	other, err := space.NewAlphabet(reversed)
	require.NoError(t, err)
	require.ErrorIs(t, table.CheckAlphabet(other), space.ErrAlphabetMismatch)
}

func TestEndIndexKeepsSharedEndpoints(t *testing.T) {
	table := &Table{Chains: []Chain{{"aaaa", "zzzz"}, {"bbbb", "zzzz"}, {"cccc", "yyyy"}}}
	index := table.EndIndex()
	require.ElementsMatch(t, []int{0, 1}, index["zzzz"])
	require.Equal(t, []int{2}, index["yyyy"])
}

func BenchmarkBuildChainSHA256(b *testing.B) {
	alpha := space.Lowercase()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BuildChain("abcd", hashes.SHA256, hashes.Params{}, alpha, 4, 100)
	}
}
