package domain

import "strings"

// SearchQuery is the free-text product search built from the turn parameters.
type SearchQuery struct {
	Brand ParamValue
	Model ParamValue
	Color ParamValue
}

// Keywords joins the non-empty normalized values with a space.
func (q SearchQuery) Keywords() string {
	parts := make([]string, 0, 3)
	for _, v := range []ParamValue{q.Brand, q.Model, q.Color} {
		if s := v.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
