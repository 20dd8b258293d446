package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func sampleRun(id, createdAt string) Run {
	return Run{
		ID:        id,
		CreatedAt: createdAt,
		Layouts:   []string{"BACK_KITCHEN", "DUAL_ISLAND"},
		Door:      "DFKW",
		Top:       "CDZM",
		BudgetUSD: 20000,
		Variants: []Variant{
			{ID: "TWO_X_KITCHEN-" + id + "-v1-aaaaaa", Layout: "BACK_KITCHEN", TargetUSD: 20000, PriceUSD: 21120, OpsCount: 6, Root: "/tmp/a"},
			{ID: "TWO_X_KITCHEN-" + id + "-v2-bbbbbb", Layout: "BACK_KITCHEN", TargetUSD: 18400, PriceUSD: 18480, OpsCount: 4, Root: "/tmp/b"},
			{ID: "DUAL_ISLAND-" + id + "-v1-cccccc", Layout: "DUAL_ISLAND", TargetUSD: 20000, PriceUSD: 15180, OpsCount: 4, Root: "/tmp/c"},
		},
	}
}

func TestHistory_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	run := sampleRun("run1", "2026-03-14T08:30:00Z")
	require.NoError(t, h.RecordRun(ctx, run))

	got, err := h.GetRun(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestHistory_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	require.NoError(t, h.RecordRun(ctx, sampleRun("old", "2026-03-14T08:30:00Z")))
	require.NoError(t, h.RecordRun(ctx, sampleRun("new", "2026-03-15T08:30:00Z")))
	require.NoError(t, h.RecordRun(ctx, sampleRun("mid", "2026-03-14T12:00:00Z")))

	runs, err := h.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Equal(t, "old", runs[2].ID)
	assert.Empty(t, runs[0].Variants)
	assert.Equal(t, []string{"BACK_KITCHEN", "DUAL_ISLAND"}, runs[0].Layouts)

	limited, err := h.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestHistory_GetMissing(t *testing.T) {
	h := openTestHistory(t)

	_, err := h.GetRun(context.Background(), "nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestHistory_DuplicateRunRollsBack(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	require.NoError(t, h.RecordRun(ctx, sampleRun("run1", "2026-03-14T08:30:00Z")))

	dup := sampleRun("run2", "2026-03-14T09:00:00Z")
	dup.Variants[2].ID = dup.Variants[0].ID
	require.Error(t, h.RecordRun(ctx, dup))

	_, err := h.GetRun(ctx, "run2")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestHistory_Delete(t *testing.T) {
	ctx := context.Background()
	h := openTestHistory(t)

	require.NoError(t, h.RecordRun(ctx, sampleRun("run1", "2026-03-14T08:30:00Z")))
	require.NoError(t, h.DeleteRun(ctx, "run1"))

	_, err := h.GetRun(ctx, "run1")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, h.DeleteRun(ctx, "run1"), ErrRunNotFound)

	// a fresh run may reuse the variant ids of a deleted one
	require.NoError(t, h.RecordRun(ctx, sampleRun("run1", "2026-03-14T08:30:00Z")))
}

func TestHistory_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, h.RecordRun(ctx, sampleRun("run1", "2026-03-14T08:30:00Z")))
	require.NoError(t, h.Close())

	h, err = Open(ctx, path)
	require.NoError(t, err)
	defer h.Close()

	got, err := h.GetRun(ctx, "run1")
	require.NoError(t, err)
	assert.Len(t, got.Variants, 3)
}
