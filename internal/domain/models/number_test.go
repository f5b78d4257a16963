package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    float64
		present bool
	}{
		{"string", `"1.25"`, 1.25, true},
		{"number", `-0.0003`, -0.0003, true},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage", `"n/a"`, 0, false},
		{"nan", `"NaN"`, 0, false},
		{"bool", `true`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &n))
			v, ok := n.Get()
			assert.Equal(t, tc.present, ok)
			assert.InDelta(t, tc.want, v, 1e-12)
		})
	}
}

func TestNumber_AbsentField(t *testing.T) {
	var f FundingRate
	require.NoError(t, json.Unmarshal([]byte(`{"symbol":"BTCUSDT"}`), &f))
	assert.False(t, f.LastFundingRate.IsPresent())
	assert.Equal(t, 7.0, f.LastFundingRate.Or(7))
}

func TestNumber_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}{A: Present(2.5), B: Missing()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2.5,"b":null}`, string(b))
}
