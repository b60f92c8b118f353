package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// MarketplaceStockX is the resale marketplace quoted in replies.
const MarketplaceStockX = "stockX"

// Amount is a price as reported by the product API. The API is not
// consistent about numbers vs strings, so the literal text is kept.
type Amount string

func (a Amount) IsZero() bool { return a == "" }

func (a Amount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}
	var n json.Number
	if err := json.Unmarshal([]byte(a), &n); err == nil {
		return []byte(n), nil
	}
	return json.Marshal(string(a))
}

// Product is a single result of the product lookup. Fields not modelled here
// are kept in Extra. A decoded product marshals back to the bytes it was
// decoded from as long as its fields are left untouched.
type Product struct {
	Name              string
	RetailPrice       Amount
	LowestResellPrice map[string]Amount
	Description       string
	ReleaseDate       string
	Extra             map[string]json.RawMessage

	// raw holds the known keys as received; decoded is what they parsed to.
	raw     map[string]json.RawMessage
	decoded *productView
}

type productView struct {
	name        string
	retailPrice Amount
	resell      map[string]Amount
	description string
	releaseDate string
}

// ResellPrice returns the lowest resale price on the given marketplace.
func (p Product) ResellPrice(marketplace string) (Amount, bool) {
	a, ok := p.LowestResellPrice[marketplace]
	return a, ok && !a.IsZero()
}

var productKeys = map[string]struct{}{
	"shoeName":          {},
	"retailPrice":       {},
	"lowestResellPrice": {},
	"description":       {},
	"releaseDate":       {},
}

// UnmarshalJSON requires an object but is lenient about the known fields: a
// value of an unexpected type is treated as absent.
func (p *Product) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("domain: product must be a JSON object")
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("domain: decode product: %w", err)
	}

	out := Product{
		Extra: make(map[string]json.RawMessage),
		raw:   make(map[string]json.RawMessage),
	}
	for k, v := range all {
		if _, known := productKeys[k]; known {
			out.raw[k] = v
		} else {
			out.Extra[k] = v
		}
	}
	out.Name = stringField(out.raw["shoeName"])
	out.RetailPrice, _ = amountField(out.raw["retailPrice"])
	out.LowestResellPrice = resellField(out.raw["lowestResellPrice"])
	out.Description = stringField(out.raw["description"])
	out.ReleaseDate = stringField(out.raw["releaseDate"])
	out.decoded = out.view()

	*p = out
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+len(productKeys))
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.decoded != nil && p.decoded.equal(p.view()) {
		for k, v := range p.raw {
			out[k] = v
		}
		return json.Marshal(out)
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("domain: encode product %s: %w", key, err)
		}
		out[key] = b
		return nil
	}
	if err := set("shoeName", p.Name); err != nil {
		return nil, err
	}
	if err := set("retailPrice", p.RetailPrice); err != nil {
		return nil, err
	}
	if p.LowestResellPrice != nil {
		if err := set("lowestResellPrice", p.LowestResellPrice); err != nil {
			return nil, err
		}
	}
	if p.Description != "" {
		if err := set("description", p.Description); err != nil {
			return nil, err
		}
	}
	if p.ReleaseDate != "" {
		if err := set("releaseDate", p.ReleaseDate); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

func (p Product) view() *productView {
	return &productView{
		name:        p.Name,
		retailPrice: p.RetailPrice,
		resell:      maps.Clone(p.LowestResellPrice),
		description: p.Description,
		releaseDate: p.ReleaseDate,
	}
}

func (v *productView) equal(o *productView) bool {
	return v.name == o.name &&
		v.retailPrice == o.retailPrice &&
		v.description == o.description &&
		v.releaseDate == o.releaseDate &&
		maps.Equal(v.resell, o.resell)
}

func decodeScalar(data json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	err := dec.Decode(&v)
	return v, err
}

func stringField(data json.RawMessage) string {
	v, _ := decodeScalar(data)
	s, _ := v.(string)
	return s
}

func amountField(data json.RawMessage) (Amount, bool) {
	v, _ := decodeScalar(data)
	switch t := v.(type) {
	case string:
		return Amount(t), true
	case json.Number:
		return Amount(t.String()), true
	}
	return "", false
}

// resellField keeps the marketplaces whose price is a string or number.
func resellField(data json.RawMessage) map[string]Amount {
	var m map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &m) != nil || m == nil {
		return nil
	}
	out := make(map[string]Amount, len(m))
	for k, v := range m {
		if a, ok := amountField(v); ok {
			out[k] = a
		}
	}
	return out
}
