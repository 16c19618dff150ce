package data

import (
	"fmt"
	"testing"

	"github.com/mchmarny/acmg/pkg/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResult(t *testing.T, input string) *score.Result {
	t.Helper()
	res, err := score.Evaluate(input)
	require.NoError(t, err)
	return res
}

func TestSaveEvaluation(t *testing.T) {
	db := setupTestDB(t)

	res := mustResult(t, "PVS1, PS1, PM2_Supporting")
	e, err := SaveEvaluation(db, res)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.CreatedAt)
	assert.Equal(t, "PVS1, PS1, PM2_Supporting", e.Evidence)
	assert.Equal(t, 13, e.Score)
	assert.Equal(t, string(score.ClassPathogenic), e.Classification)

	count, err := CountEvaluations(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSaveEvaluation_NotInitialized(t *testing.T) {
	_, err := SaveEvaluation(nil, mustResult(t, "PVS1"))
	assert.ErrorIs(t, err, errDBNotInitialized)
}

func TestSaveEvaluation_NilResult(t *testing.T) {
	db := setupTestDB(t)
	_, err := SaveEvaluation(db, nil)
	assert.Error(t, err)
}

func TestQueryEvaluations(t *testing.T) {
	db := setupTestDB(t)

	inputs := []string{"PVS1, PS1", "BA1", "PM1, PP3", "BS1, BP4"}
	for _, in := range inputs {
		_, err := SaveEvaluation(db, mustResult(t, in))
		require.NoError(t, err)
	}

	list, err := QueryEvaluations(db, nil)
	require.NoError(t, err)
	assert.Len(t, list, len(inputs))

	list, err = QueryEvaluations(db, &EvaluationQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = QueryEvaluations(db, &EvaluationQuery{Classification: string(score.ClassBenign)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BA1", list[0].Evidence)
	assert.InDelta(t, mustResult(t, "BA1").Probability, list[0].Probability, 1e-9)
}

func TestQueryEvaluations_InvalidClass(t *testing.T) {
	db := setupTestDB(t)
	_, err := QueryEvaluations(db, &EvaluationQuery{Classification: "Bogus"})
	assert.Error(t, err)
}

func TestQueryEvaluations_MostRecentFirst(t *testing.T) {
	db := setupTestDB(t)

	for i, day := range []string{"2026-08-01T00:00:00Z", "2026-08-03T00:00:00Z", "2026-08-02T00:00:00Z"} {
		_, err := db.Exec(db.rebind(insertEvaluationSQL),
			fmt.Sprintf("id-%d", i), day, "PM1", 2, string(score.ClassUncertain), 0.2)
		require.NoError(t, err)
	}

	list, err := QueryEvaluations(db, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-08-03T00:00:00Z", list[0].CreatedAt)
	assert.Equal(t, "2026-08-02T00:00:00Z", list[1].CreatedAt)
	assert.Equal(t, "2026-08-01T00:00:00Z", list[2].CreatedAt)
}

func TestReset(t *testing.T) {
	db := setupTestDB(t)

	for _, in := range []string{"PVS1", "PM1"} {
		_, err := SaveEvaluation(db, mustResult(t, in))
		require.NoError(t, err)
	}

	n, err := Reset(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := CountEvaluations(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
