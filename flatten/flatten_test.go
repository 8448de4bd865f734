package flatten

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenLeafPerEntry(t *testing.T) {
	raw := json.RawMessage(`{
		"duty_category": "medium",
		"cost_breakdown": {
			"machine_hour_rate": 450,
			"unit_cost": 618.75
		},
		"notes": ["first", "second"],
		"tags": [],
		"extra": {}
	}`)

	rows, err := Flatten(raw)
	require.NoError(t, err)

	paths := make([]string, len(rows))
	for i, r := range rows {
		paths[i] = r.Path
	}

	// Document order is preserved; empty containers count as one leaf each.
	assert.Equal(t, []string{
		"duty_category",
		"cost_breakdown.machine_hour_rate",
		"cost_breakdown.unit_cost",
		"notes[0]",
		"notes[1]",
		"tags",
		"extra",
	}, paths)

	assert.Equal(t, "[]", rows[5].Value)
	assert.Equal(t, "{}", rows[6].Value)
}

func TestFlattenNull(t *testing.T) {
	rows, err := Flatten(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Flatten(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Null leaves inside objects contribute nothing either.
	rows, err = Flatten(json.RawMessage(`{"a": null, "b": 1}`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "b", rows[0].Path)
}

func TestFlattenScalar(t *testing.T) {
	rows, err := Flatten(json.RawMessage(`42`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Path)
	assert.Equal(t, json.Number("42"), rows[0].Value)
}

func TestFlattenNestedArrays(t *testing.T) {
	rows, err := Flatten(json.RawMessage(`{"steps": [{"result": 10}, {"result": 20}]}`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "steps[0].result", rows[0].Path)
	assert.Equal(t, "steps[1].result", rows[1].Path)
}

func TestFlattenInvalidJSON(t *testing.T) {
	_, err := Flatten(json.RawMessage(`{"a":`))
	assert.Error(t, err)
}

func TestFormatValueCurrency(t *testing.T) {
	tests := []struct {
		key  string
		val  interface{}
		want string
	}{
		{"total_cost", 1234.5, "₹1,234.50"},
		{"unit_cost", json.Number("500"), "₹500"},
		{"machine_hour_rate", 450.0, "₹450"},
		{"profit_per_unit", 56.25, "₹56.25"},
		{"outsourcing_mhr", 800.0, "₹800"},
		{"packing_forwarding_per_unit", 4.5, "₹4.50"},
		{"overheads_per_unit", 100.0, "₹100"},
		{"investment_cost", 1234567.0, "₹12,34,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.key, tt.val), "key=%s", tt.key)
	}
}

func TestFormatValueManHoursNotCurrency(t *testing.T) {
	// man_hours fields are durations even when they look rate-ish.
	assert.Equal(t, "2", FormatValue("man_hours_per_unit", 2))
	assert.Equal(t, "0.5", FormatValue("man_hours_per_unit", json.Number("0.5")))
}

func TestFormatValuePlainNumbers(t *testing.T) {
	assert.Equal(t, "12,345.5", FormatValue("volume", 12345.5))
	assert.Equal(t, "1,23,456", FormatValue("quantity", 123456))
	assert.Equal(t, "42", FormatValue("length", json.Number("42")))
	assert.Equal(t, "-1,000", FormatValue("delta", -1000))
}

func TestFormatValueStringsAndFallback(t *testing.T) {
	assert.Equal(t, "CNC Lathe - 3 Axis", FormatValue("name", "CNC Lathe - 3 Axis"))
	assert.Equal(t, "true", FormatValue("enabled", true))
	assert.Equal(t, "[]", FormatValue("anything", "[]"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Cost Breakdown › Unit Cost", Label("cost_breakdown.unit_cost"))
	assert.Equal(t, "Duty Category", Label("duty_category"))
	assert.Equal(t, "Notes[0]", Label("notes[0]"))
}
