package shelf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeshelf/codeshelf/internal/models"
)

func TestParseBatchMode(t *testing.T) {
	mode, err := ParseBatchMode("append")
	require.NoError(t, err)
	assert.Equal(t, BatchAppend, mode)

	mode, err = ParseBatchMode("replace")
	require.NoError(t, err)
	assert.Equal(t, BatchReplace, mode)

	_, err = ParseBatchMode("merge")
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestBatchResult_Err(t *testing.T) {
	ok := &BatchResult{Updated: []*models.Project{{ID: "p1"}}}
	assert.True(t, ok.Ok())
	assert.NoError(t, ok.Err())

	failed := &BatchResult{
		Updated: []*models.Project{{ID: "p1"}},
		Failed: map[string]error{
			"p3": errors.New("boom"),
			"p2": errors.New("boom"),
		},
	}
	assert.False(t, failed.Ok())

	err := failed.Err()
	require.Error(t, err)
	// ids are sorted for a stable message
	assert.Contains(t, err.Error(), "p2, p3")
	assert.Contains(t, err.Error(), "2 of 3")
}
