package hashes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.

func TestDigestWidths(t *testing.T) {
	for _, tc := range []struct {
		alg  Algorithm
		want int
	}{
		{MD5, 16},
		{SHA256, 32},
		{SHA3_512, 64},
	} {
		d, err := Sum([]byte("password"), tc.alg, Params{})
		require.NoError(t, err, tc.alg)
		require.Len(t, d, tc.want, tc.alg)

		n, err := Size(tc.alg, Params{})
		require.NoError(t, err)
		require.Equal(t, tc.want, n)
	}
}

func TestFixedAlgorithmsAreDeterministic(t *testing.T) {
	for _, alg := range []Algorithm{MD5, SHA256, SHA3_512} {
		a, err := Sum([]byte("correct horse"), alg, Params{})
		require.NoError(t, err)
		b, err := Sum([]byte("correct horse"), alg, Params{})
		require.NoError(t, err)
		require.Equal(t, a, b, alg)
	}
}

func TestScryptParamsChangeTheDigest(t *testing.T) {
	p := Params{LogN: 4, R: 8, P: 1, KeyLen: 32, Salt: []byte("0123456789abcdef")}

	first, err := Sum([]byte("password"), Scrypt, p)
	require.NoError(t, err)
	require.Len(t, first, int(p.KeyLen))

	again, err := Sum([]byte("password"), Scrypt, p)
	require.NoError(t, err)
	require.Equal(t, first, again, "identical parameters must reproduce the digest")

	harder := p
	harder.LogN = 5
	other, err := Sum([]byte("password"), Scrypt, harder)
	require.NoError(t, err)
	require.NotEqual(t, first, other, "differing work factor must change the digest")

	salted := p
	salted.Salt = []byte("fedcba9876543210")
	other, err = Sum([]byte("password"), Scrypt, salted)
	require.NoError(t, err)
	require.NotEqual(t, first, other, "differing salt must change the digest")
}

func TestInvalidInputs(t *testing.T) {
	_, err := Sum([]byte("x"), Algorithm(9), Params{})
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = Parse("sha1")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	/* Scrypt without parameters, and fixed-width algorithms with them. */
	_, err = Sum([]byte("x"), Scrypt, Params{})
	require.ErrorIs(t, err, ErrInvalidAlgorithmParams)
	_, err = Sum([]byte("x"), MD5, Params{LogN: 14, R: 8, P: 1, KeyLen: 32, Salt: []byte("s")})
	require.ErrorIs(t, err, ErrInvalidAlgorithmParams)

	for _, p := range []Params{
		{LogN: 0, R: 8, P: 1, KeyLen: 32, Salt: []byte("s")},
		{LogN: 14, R: 0, P: 1, KeyLen: 32, Salt: []byte("s")},
		{LogN: 14, R: 8, P: 1, KeyLen: 8, Salt: []byte("s")},
		{LogN: 14, R: 8, P: 1, KeyLen: 32},
	} {
		require.ErrorIs(t, p.Validate(Scrypt), ErrInvalidAlgorithmParams, "%+v", p)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{MD5, SHA256, SHA3_512, Scrypt} {
		got, err := Parse(alg.String())
		require.NoError(t, err)
		require.Equal(t, alg, got)
	}
}

func TestSumAllOrderAndFailFast(t *testing.T) {
	passwords := []string{"aaaa", "bbbb", "cccc", "dddd", "eeee"}
	digests, err := SumAll(passwords, SHA256, Params{}, 3)
	require.NoError(t, err)
	require.Len(t, digests, len(passwords))
	for i, pw := range passwords {
		want, _ := Sum([]byte(pw), SHA256, Params{})
		require.Equal(t, want, digests[i])
	}

	_, err = SumAll(passwords, Scrypt, Params{}, 3)
	require.ErrorIs(t, err, ErrInvalidAlgorithmParams)
}

func BenchmarkSumSHA256(b *testing.B) {
	msg := []byte("abcdefgh")
	b.SetBytes(int64(len(msg)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Sum(msg, SHA256, Params{})
	}
}
