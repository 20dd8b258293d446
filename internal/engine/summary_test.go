package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	design := mustBuild(t, "BACK_KITCHEN", "DFKW", "CDZM")
	result, err := OptimizeToBudget(design, 1)
	require.NoError(t, err)

	summary, err := Summarize(result.Final)
	require.NoError(t, err)
	assert.Equal(t, DesignSummary{
		Layout:     "BACK_KITCHEN",
		PriceUSD:   9790,
		Modules:    9,
		Operations: 7,
	}, summary)
}

func TestDeterministicEqual(t *testing.T) {
	a := mustBuild(t, "DUAL_ISLAND", "DFKW", "CDZM")
	b := mustBuild(t, "DUAL_ISLAND", "DFKW", "CDZM")

	// ids and timestamps are not part of the comparison
	b.CreatedAt = "1999-01-01T00:00:00Z"
	b.Rooms[0].Placements[0].ID = "renamed"
	assert.True(t, DeterministicEqual(a, b))

	moved := a.Clone()
	moved.Rooms[0].Placements[3].X += 10
	assert.False(t, DeterministicEqual(a, moved))

	refinished := a.Clone()
	refinished.Top = "CMCA"
	assert.False(t, DeterministicEqual(a, refinished))

	swapped := a.Clone()
	ps := swapped.Rooms[0].Placements
	ps[0], ps[1] = ps[1], ps[0]
	assert.False(t, DeterministicEqual(a, swapped))

	other := mustBuild(t, "BROKEN_PLAN", "DFKW", "CDZM")
	assert.False(t, DeterministicEqual(a, other))
}
