package prompt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/swimcoach/internal/swim"
)

func testRecord() swim.Record {
	return swim.Record{
		Name:         "Alex",
		LapTimes:     swim.Series{32.5, 33.1, 34},
		StrokeCounts: swim.Series{18, 19, 20},
		BreathCounts: swim.Series{6, 6, 7},
		Splits:       swim.Series{65.6, 67.2},
		DPS:          swim.Series{2.1, 2, 1.9},
	}
}

func TestRender_ContainsRecord(t *testing.T) {
	out, err := Render(testRecord())
	require.NoError(t, err)

	assert.Contains(t, out, "Swimmer Alex")
	assert.Contains(t, out, "Lap times: [32.5, 33.1, 34]")
	assert.Contains(t, out, "Stroke counts: [18, 19, 20]")
	assert.Contains(t, out, "Breath counts: [6, 6, 7]")
	assert.Contains(t, out, "Splits: [65.6, 67.2]")
	assert.Contains(t, out, "DPS (Distance Per Stroke): [2.1, 2, 1.9]")
}

func TestRender_NamesEveryPeriodAndField(t *testing.T) {
	out, err := Render(testRecord())
	require.NoError(t, err)

	assert.Contains(t, out, "First Form Freestyle, First Period Recovery, Second Form Freestyle, and Second Period Recovery")
	for _, p := range swim.Periods {
		assert.Contains(t, out, `"`+p.Key+`"`)
		for _, f := range p.Kind.Fields() {
			assert.Contains(t, out, `"`+f+`"`, "period %s", p.Key)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	a, err := Render(testRecord())
	require.NoError(t, err)
	b, err := Render(testRecord())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_EmptySeries(t *testing.T) {
	out, err := Render(swim.Record{Name: "Sam"})
	require.NoError(t, err)
	assert.Contains(t, out, "Lap times: []")
}

func TestSchema_IsValidJSON(t *testing.T) {
	var parsed map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(Schema()), &parsed))

	require.Len(t, parsed, len(swim.Periods))
	for _, p := range swim.Periods {
		period, ok := parsed[p.Key]
		require.True(t, ok, p.Key)
		assert.Len(t, period, len(p.Kind.Fields()))
		assert.Equal(t, p.Start, period["start_time"])
		assert.Equal(t, p.End, period["end_time"])
	}
}

func TestSystem_AsksForJSON(t *testing.T) {
	assert.Contains(t, System(), "JSON")
}
