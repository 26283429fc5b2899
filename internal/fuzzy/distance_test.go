package fuzzy

import (
	"strings"
	"testing"

	"github.com/agnivade/levenshtein"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"hello", "hello", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"jon smith", "jonathan smith", 5},

		// Case-insensitive
		{"ABC", "abc", 0},
		{"ACME Corp", "acme corp", 0},
		{"Hello", "hellO", 0},

		// Multi-byte runes count once
		{"café", "cafe", 1},
		{"Müller GmbH", "müller gmbh", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a), "distance must be symmetric")
		})
	}
}

func TestDistanceMatchesReferenceImplementation(t *testing.T) {
	words := []string{
		"", "a", "Acme", "ACME Corporation", "Acme Co", "Jonathan Smith", "Jon Smith",
		"Globex", "Initech LLC", "initech", "Umbrella Corp.", "Stark Industries",
		"Wayne Enterprises", "wayne enterprise", "Cyberdyne Systems", "Soylent",
	}

	for _, a := range words {
		for _, b := range words {
			want := levenshtein.ComputeDistance(strings.ToLower(a), strings.ToLower(b))
			assert.Equal(t, want, Distance(a, b), "Distance(%q, %q)", a, b)
		}
	}
}

func TestDistanceIdentity(t *testing.T) {
	for _, s := range []string{"", " ", "x", "Restricted Party", "ÅÄÖ åäö"} {
		assert.Zero(t, Distance(s, s), "Distance(%q, %q)", s, s)
	}
}

func TestMatrixReuse(t *testing.T) {
	var m matrix

	// A long comparison first grows the buffers, later short ones reuse them.
	assert.Equal(t, 3, m.distance(fold("kitten"), fold("sitting")))
	assert.Equal(t, 1, m.distance(fold("ab"), fold("a")))
	assert.Equal(t, 5, m.distance(fold("jon smith"), fold("jonathan smith")))
	assert.Equal(t, 0, m.distance(fold("x"), fold("X")))
}
