package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNote_JSONShape(t *testing.T) {
	note := Note{
		ID:        "n1",
		Title:     "Lunch",
		CreatedAt: NewTimestamp(time.Date(2024, time.January, 2, 3, 4, 5, 678_900_000, time.UTC)),
		Table:     []TableRow{{ID: "r1", Item: "Pizza", Amount: "12.50"}},
		Total:     12.5,
	}

	data, err := json.Marshal(note)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "n1",
		"title": "Lunch",
		"createdAt": "2024-01-02T03:04:05.678Z",
		"table": [{"id": "r1", "item": "Pizza", "amount": "12.50"}],
		"total": 12.5
	}`, string(data))

	note.Split = &Split{People: 2, PerPerson: 6.25}
	data, err = json.Marshal(note)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"split":{"people":2,"perPerson":6.25}`)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		parsed bool
	}{
		{"canonical", `"2024-06-01T10:00:00.125Z"`, "2024-06-01T10:00:00.125Z", true},
		{"extended offset", `"2024-06-01T15:30:00+05:30"`, "2024-06-01T10:00:00.000Z", true},
		{"basic offset", `"2024-03-01T09:15:30.250+0530"`, "2024-03-01T03:45:30.250Z", true},
		{"no fraction", `"2024-06-01T10:00:00Z"`, "2024-06-01T10:00:00.000Z", true},
		{"text", `"yesterday"`, "", false},
		{"number", `12`, "", false},
		{"null", `null`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.Equal(t, tt.parsed, !ts.IsZero())
			if tt.parsed {
				assert.Equal(t, tt.want, ts.String())
			}

			data, err := json.Marshal(ts)
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(data), "written back unchanged")
		})
	}
}

func TestTimestamp_CanonicalDropsRaw(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01T10:00:00.125Z"`), &ts))
	assert.Equal(t, NewTimestamp(time.Date(2024, time.June, 1, 10, 0, 0, 125_000_000, time.UTC)), ts)
}

func TestSortNewestFirst_UnparsedLast(t *testing.T) {
	var unparsed Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &unparsed))

	notes := []Note{
		{ID: "old", CreatedAt: NewTimestamp(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "unknown", CreatedAt: unparsed},
		{ID: "new", CreatedAt: NewTimestamp(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))},
	}
	SortNewestFirst(notes)

	assert.Equal(t, "new", notes[0].ID)
	assert.Equal(t, "old", notes[1].ID)
	assert.Equal(t, "unknown", notes[2].ID)
}

func TestCalculationType(t *testing.T) {
	assert.Equal(t, "Sub (Value - Sum)", CalculationSubtract.Label())
	assert.Equal(t, "Count Items", CalculationCount.Label())
	assert.Equal(t, "Sum", CalculationType("unknown").Label())
	assert.True(t, CalculationSubtract.NeedsValue())
	assert.False(t, CalculationAverage.NeedsValue())
	assert.True(t, CalculationPercentage.Valid())
	assert.False(t, CalculationType("median").Valid())

	assert.Equal(t, 0.0, CalculationConfig{Type: CalculationSubtract}.Baseline())
	assert.Equal(t, 42.5, Subtract(42.5).Baseline())
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	notes := []Note{
		{ID: "old", CreatedAt: NewTimestamp(base)},
		{ID: "new", CreatedAt: NewTimestamp(base.Add(2 * time.Hour))},
		{ID: "mid", CreatedAt: NewTimestamp(base.Add(time.Hour))},
		{ID: "mid2", CreatedAt: NewTimestamp(base.Add(time.Hour))},
	}

	SortNewestFirst(notes)

	ids := make([]string, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"new", "mid", "mid2", "old"}, ids)
}
