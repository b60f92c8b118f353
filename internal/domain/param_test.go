package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamValue_Unmarshal(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		want     string
		multiple bool
	}{
		{name: "string", raw: `"Nike"`, want: "Nike"},
		{name: "list", raw: `["Air","Jordan"]`, want: "Air Jordan", multiple: true},
		{name: "number", raw: `2`, want: "2"},
		{name: "float", raw: `2.0`, want: "2.0"},
		{name: "null", raw: `null`, want: ""},
		{name: "empty list", raw: `[]`, want: "", multiple: true},
		{name: "mixed list", raw: `["size", 10]`, want: "size 10", multiple: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p ParamValue
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &p))
			require.Equal(t, tc.want, p.String())
			require.Equal(t, tc.multiple, p.IsMultiple())
		})
	}
}

func TestParamValue_ObjectKeptAsJSON(t *testing.T) {
	var p ParamValue
	require.NoError(t, json.Unmarshal([]byte(`{ "amount": 100, "currency": "USD" }`), &p))
	require.Equal(t, `{"amount":100,"currency":"USD"}`, p.String())
}

func TestParamValue_RejectsInvalidJSON(t *testing.T) {
	var p ParamValue
	require.Error(t, p.UnmarshalJSON([]byte(`[1,`)))
}

func TestParams_DecodeFromPlatform(t *testing.T) {
	var params Params
	require.NoError(t, json.Unmarshal([]byte(`{"brand":["Air","Jordan"],"model":"","number":3}`), &params))

	require.Equal(t, "Air Jordan", params.Get("brand").String())
	require.Equal(t, []string{"Air", "Jordan"}, params.Get("brand").Values())

	_, ok := params.Lookup("model")
	require.False(t, ok)
	_, ok = params.Lookup("color")
	require.False(t, ok)

	n, ok := params.Lookup("number")
	require.True(t, ok)
	require.Equal(t, "3", n.String())
}

func TestParamValue_Marshal(t *testing.T) {
	raw, err := json.Marshal(Multiple("Air", "Jordan"))
	require.NoError(t, err)
	require.JSONEq(t, `["Air","Jordan"]`, string(raw))

	raw, err = json.Marshal(Single("Nike"))
	require.NoError(t, err)
	require.JSONEq(t, `"Nike"`, string(raw))
}

func TestSearchQuery_Keywords(t *testing.T) {
	q := SearchQuery{Brand: Multiple("Air", "Jordan")}
	require.Equal(t, "Air Jordan", q.Keywords())

	q = SearchQuery{Brand: Single("Nike"), Model: Single(""), Color: Multiple("white", "black")}
	require.Equal(t, "Nike white black", q.Keywords())

	require.Equal(t, "", SearchQuery{}.Keywords())
}
