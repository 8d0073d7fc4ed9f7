package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultKey_StableForIdenticalRequests(t *testing.T) {
	settings := map[string]interface{}{"contest_mode": "main", "num_lineups": 20}

	first, err := ResultKey("slate-2026-09-07", settings)
	require.NoError(t, err)
	second, err := ResultKey("slate-2026-09-07", settings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "optimization:slate-2026-09-07:")
}

func TestResultKey_ChangesWithSlateAndSettings(t *testing.T) {
	settings := map[string]interface{}{"contest_mode": "main", "num_lineups": 20}

	base, err := ResultKey("slate-a", settings)
	require.NoError(t, err)

	otherSlate, err := ResultKey("slate-b", settings)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSlate)

	otherSettings, err := ResultKey("slate-a", map[string]interface{}{"contest_mode": "showdown", "num_lineups": 20})
	require.NoError(t, err)
	assert.NotEqual(t, base, otherSettings)
}
