package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const apiProduct = `{
	"shoeName": "Jordan 1 Retro High Chicago",
	"styleID": "555088-101",
	"retailPrice": 160,
	"lowestResellPrice": {"stockX": 1450.5, "goat": "1500"},
	"releaseDate": "2015-05-30",
	"thumbnail": "https://example.com/j1.png"
}`

func TestProduct_Unmarshal(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(apiProduct), &p))

	require.Equal(t, "Jordan 1 Retro High Chicago", p.Name)
	require.Equal(t, Amount("160"), p.RetailPrice)
	resell, ok := p.ResellPrice(MarketplaceStockX)
	require.True(t, ok)
	require.Equal(t, Amount("1450.5"), resell)
	require.Equal(t, Amount("1500"), p.LowestResellPrice["goat"])
	require.Empty(t, p.Description)
	require.Equal(t, "2015-05-30", p.ReleaseDate)
	require.Contains(t, p.Extra, "styleID")
	require.Contains(t, p.Extra, "thumbnail")
}

func TestProduct_RoundTripKeepsUnknownFields(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(apiProduct), &p))

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"shoeName": "Jordan 1 Retro High Chicago",
		"styleID": "555088-101",
		"retailPrice": 160,
		"lowestResellPrice": {"stockX": 1450.5, "goat": "1500"},
		"releaseDate": "2015-05-30",
		"thumbnail": "https://example.com/j1.png"
	}`, string(raw))
}

func TestProduct_RoundTripKeepsFieldShapes(t *testing.T) {
	in := `{"shoeName":"A","retailPrice":"110","lowestResellPrice":{"stockX":"98"},"description":"","releaseDate":""}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	require.Equal(t, Amount("110"), p.RetailPrice)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, in, string(raw))
}

func TestProduct_EditedFieldsAreEncoded(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"shoeName":"A","retailPrice":"110","sku":"x"}`), &p))
	p.Name = "B"

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"shoeName":"B","retailPrice":110,"sku":"x"}`, string(raw))
}

func TestProduct_WrongFieldTypesAreAbsent(t *testing.T) {
	in := `{"shoeName":"B","retailPrice":{"usd":1},"lowestResellPrice":[],"description":7,"releaseDate":false}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	require.Equal(t, "B", p.Name)
	require.True(t, p.RetailPrice.IsZero())
	require.Nil(t, p.LowestResellPrice)
	require.Empty(t, p.Description)
	require.Empty(t, p.ReleaseDate)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, in, string(raw))
}

func TestProduct_OddProductDoesNotFailList(t *testing.T) {
	var ps []Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"shoeName":"A","lowestResellPrice":{"stockX":98,"goat":null,"flight":{}}},
		{"shoeName":"B","lowestResellPrice":[]}
	]`), &ps))
	require.Len(t, ps, 2)
	require.Equal(t, "A", ps[0].Name)
	require.Equal(t, "B", ps[1].Name)
	require.Equal(t, map[string]Amount{"stockX": "98"}, ps[0].LowestResellPrice)
}

func TestProduct_NullFields(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"shoeName":"X","retailPrice":null,"description":null}`), &p))
	require.True(t, p.RetailPrice.IsZero())
	require.Empty(t, p.Description)
	_, ok := p.ResellPrice(MarketplaceStockX)
	require.False(t, ok)
}

func TestProduct_RejectsNonObject(t *testing.T) {
	var p Product
	require.Error(t, json.Unmarshal([]byte(`null`), &p))
	require.Error(t, json.Unmarshal([]byte(`"shoe"`), &p))
}

func TestAmount_MarshalNonNumeric(t *testing.T) {
	raw, err := json.Marshal(Amount("TBD"))
	require.NoError(t, err)
	require.Equal(t, `"TBD"`, string(raw))

	raw, err = json.Marshal(Amount(""))
	require.NoError(t, err)
	require.Equal(t, `null`, string(raw))
}
