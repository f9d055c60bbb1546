package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected string
	}{
		{
			name:     "already sorted",
			a:        "1",
			b:        "2",
			expected: "1_2",
		},
		{
			name:     "reversed input sorts",
			a:        "2",
			b:        "1",
			expected: "1_2",
		},
		{
			name:     "firebase-style uids",
			a:        "zU8mKQ3vW1d5hYtR2oPnE4cAbF90",
			b:        "aL7nJX2uV0c4gXsQ1nOmD3bZaE89",
			expected: "aL7nJX2uV0c4gXsQ1nOmD3bZaE89_zU8mKQ3vW1d5hYtR2oPnE4cAbF90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ID(tt.a, tt.b))
		})
	}
}

func TestIDSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1", "2"},
		{"abc", "abd"},
		{"uidA", "uidB"},
		{"x", "x"},
	}
	for _, p := range pairs {
		assert.Equal(t, ID(p[0], p[1]), ID(p[1], p[0]), "ID(%q, %q)", p[0], p[1])
	}
}
