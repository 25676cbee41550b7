package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/subcrack/internal/model"
)

const reverseKey = "ZYXWVUTSRQPONMLKJIHGFEDCBA"

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "subcrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := st.InsertRun(ctx, model.Run{
			StartedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			Kind:      model.KindExperiment,
			Seed:      int64(i),
			Key:       reverseKey,
			Trials:    1,
			Results: []model.RunResult{
				{Length: 1000, SuccessRate: 21.43},
				{Length: 50, SuccessRate: 2.33},
			},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id, "expected generated run id")
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID, "newest run first")
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Equal(t, int64(2), runs[0].Seed)
	assert.Equal(t, reverseKey, runs[0].Key)
	assert.True(t, runs[0].StartedAt.Equal(time.Unix(0, 0).Add(2*time.Minute)), "started_at %v", runs[0].StartedAt)

	results := runs[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, 1000, results[0].Length, "results keep insertion order")
	assert.Equal(t, 50, results[1].Length)
}

func TestListRunsFiltersKind(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.InsertRun(ctx, model.Run{StartedAt: time.Now(), Kind: model.KindExperiment, Key: reverseKey, Trials: 1})
	require.NoError(t, err)
	trendID, err := st.InsertRun(ctx, model.Run{
		ID:        "fixed-id",
		StartedAt: time.Now(),
		Kind:      model.KindTrend,
		Trials:    50,
		Results:   []model.RunResult{{Length: 50, SuccessRate: 2.33, StdDev: 0.5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", trendID)

	runs, err := st.ListRuns(ctx, model.HistoryConfig{Kind: model.KindTrend})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.KindTrend, runs[0].Kind)
	assert.Equal(t, 50, runs[0].Trials)
	assert.Empty(t, runs[0].Key)
	require.Len(t, runs[0].Results, 1)
	assert.Equal(t, 0.5, runs[0].Results[0].StdDev)
}

func TestInsertRunDuplicateIDFails(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	run := model.Run{ID: "dup", StartedAt: time.Now(), Kind: model.KindExperiment}
	_, err := st.InsertRun(ctx, run)
	require.NoError(t, err)
	_, err = st.InsertRun(ctx, run)
	require.Error(t, err, "expected duplicate id error")
}

func TestInsertRunRejectsInvalidKey(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"ABC", "AAAAAAAAAAAAAAAAAAAAAAAAAA"} {
		_, err := st.InsertRun(ctx, model.Run{StartedAt: time.Now(), Kind: model.KindExperiment, Key: key})
		require.Error(t, err, "key %q", key)
	}

	runs, err := st.ListRuns(ctx, model.HistoryConfig{})
	require.NoError(t, err)
	assert.Empty(t, runs, "rejected runs must not be stored")
}

func TestListRunsReportsCorruptKey(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.InsertRun(ctx, model.Run{StartedAt: time.Now(), Kind: model.KindExperiment, Key: reverseKey})
	require.NoError(t, err)
	_, err = st.db.ExecContext(ctx, `UPDATE runs SET key = ? WHERE id = ?`, "ZZXWVUTSRQPONMLKJIHGFEDCBA", id)
	require.NoError(t, err)

	_, err = st.ListRuns(ctx, model.HistoryConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), id)
}
