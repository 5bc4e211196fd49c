package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyLess(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"numeric by value", "2", "10", true},
		{"numeric by value reversed", "10", "2", false},
		{"lexicographic when mixed", "10", "ABC", true},
		{"case insensitive", "abc", "ABD", true},
		{"equal keys", "ABC-123", "ABC-123", false},
		{"plates", "ABC-123", "XYZ-900", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, keyLess(tc.a, tc.b))
		})
	}
}

func TestContainsFold(t *testing.T) {
	require.True(t, containsFold("Volvo FH16", "volvo"))
	require.True(t, containsFold("Volvo FH16", ""))
	require.False(t, containsFold("Volvo FH16", "scania"))
}
