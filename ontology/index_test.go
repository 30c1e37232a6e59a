package ontology_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByTerm(t *testing.T) {
	ix := buildIndex(t)

	t.Run("preferred name match ranks first", func(t *testing.T) {
		results := ix.SearchByTerm("torque")
		require.NotEmpty(t, results)
		assert.Equal(t, "0173-101-TORQUE", results[0].Code)
	})

	t.Run("synonym tokens reach the term", func(t *testing.T) {
		results := ix.SearchByTerm("turning moment")
		require.NotEmpty(t, results)
		assert.Equal(t, "0173-101-TORQUE", results[0].Code)
	})

	t.Run("no shared tokens yields nothing", func(t *testing.T) {
		assert.Empty(t, ix.SearchByTerm("zirconium"))
	})

	t.Run("empty query yields nothing", func(t *testing.T) {
		assert.Empty(t, ix.SearchByTerm("  "))
	})

	t.Run("restartable", func(t *testing.T) {
		first := ix.SearchByTerm("voltage")
		second := ix.SearchByTerm("voltage")
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Code, second[i].Code)
		}
	})
}

func TestTermMatchesText(t *testing.T) {
	ix := buildIndex(t)

	tests := []struct {
		name string
		code string
		text string
		want bool
	}{
		{"preferred name", "0173-101-TORQUE", "Torque", true},
		{"normalized preferred name", "0173-101-TORQUE", "  TORQUE ", true},
		{"synonym", "0173-101-TORQUE", "turning_moment", true},
		{"second synonym", "0173-101-TORQUE", "Moment of Force", true},
		{"unrelated", "0173-101-TORQUE", "voltage", false},
		{"unknown code", "no-such-code", "torque", false},
		{"empty text", "0173-101-TORQUE", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.TermMatchesText(tt.code, tt.text))
		})
	}
}

func TestTermMatchesUnit(t *testing.T) {
	ix := buildIndex(t)

	term, ok := ix.Lookup("0173-101-TORQUE")
	require.True(t, ok)

	assert.True(t, term.MatchesUnit("Nm"))
	assert.True(t, term.MatchesUnit("nm"))
	assert.True(t, term.MatchesUnit("N-m"))
	assert.False(t, term.MatchesUnit("V"))
	assert.False(t, term.MatchesUnit(""))

	actuators, ok := ix.Lookup("0173-101-ACTUATORS")
	require.True(t, ok)
	assert.False(t, actuators.MatchesUnit("Nm"), "term without unit never matches")
}
