package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_UnmarshalJSON(t *testing.T) {
	cases := map[string]string{
		`"12.5g"`:      "12.5g",
		`1000`:         "1000",
		`4.560`:        "4.560",
		`-3`:           "-3",
		`null`:         "",
		`true`:         "",
		`false`:        "",
		`{"v": 1}`:     "",
		`[1, 2]`:       "",
		`"  spaced  "`: "  spaced  ",
	}
	for in, want := range cases {
		var got Text
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, string(got), in)
	}
}

func TestLineItem_UnmarshalJSONIsLenient(t *testing.T) {
	var items []LineItem
	body := `[
		{"particulars": "Gold Ring", "netWeight": 4.5, "rate": "6000", "amount": 1000},
		{"particulars": "Chain", "amount": true, "purity": {"k": 22}}
	]`
	require.NoError(t, json.Unmarshal([]byte(body), &items))

	require.Len(t, items, 2)
	assert.Equal(t, "4.5", items[0].NetWeight)
	assert.Equal(t, "1000", items[0].Amount)
	assert.Equal(t, "", items[1].Amount)
	assert.Equal(t, "", items[1].Purity)

	totals := NewTaxCalculator(DefaultGSTRate).Calculate(items)
	assert.Equal(t, int64(1030), totals.GrandTotal)
}
