package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// ContextLifespan is the number of turns a context stays active on the
	// platform side.
	ContextLifespan = 5

	LabelSneakers        = "sneakers"
	LabelSelectedSneaker = "selected_sneaker"

	ParamSneakers = "sneakers"
	ParamSneaker  = "sneaker"
	ParamInfoType = "type"
)

// InfoType is what the user asked to see about a sneaker.
type InfoType string

const (
	InfoPrice   InfoType = "price"
	InfoDetails InfoType = "details"
)

// Opposite returns the info type offered as the follow-up.
func (t InfoType) Opposite() InfoType {
	if t == InfoPrice {
		return InfoDetails
	}
	return InfoPrice
}

func (t InfoType) Valid() bool {
	return t == InfoPrice || t == InfoDetails
}

// Context is a conversation context as exchanged with the platform.
// Parameters are kept raw: the platform adds its own keys to the ones
// written here and echoes all of them back.
type Context struct {
	Name          string                     `json:"name"`
	LifespanCount int                        `json:"lifespanCount,omitempty"`
	Parameters    map[string]json.RawMessage `json:"parameters,omitempty"`
}

var ErrNoContext = errors.New("domain: context not found")

// ContextName builds the fully qualified context name for a session.
func ContextName(session, label string) string {
	return strings.TrimRight(session, "/") + "/contexts/" + label
}

// Label returns the last path segment of the context name.
func (c Context) Label() string {
	if i := strings.LastIndex(c.Name, "/"); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

func (c Context) HasParam(key string) bool {
	_, ok := c.Parameters[key]
	return ok
}

// Decode unmarshals the named parameter into v.
func (c Context) Decode(key string, v any) error {
	raw, ok := c.Parameters[key]
	if !ok {
		return fmt.Errorf("domain: context %q has no parameter %q", c.Label(), key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("domain: decode context parameter %q: %w", key, err)
	}
	return nil
}

// InfoType returns the info type stored in the context, if any.
func (c Context) InfoType() InfoType {
	var s string
	if err := c.Decode(ParamInfoType, &s); err != nil {
		return ""
	}
	if t := InfoType(s); t.Valid() {
		return t
	}
	return ""
}

// NewContext encodes params into a context owned by the session.
func NewContext(session, label string, params map[string]any) (Context, error) {
	encoded := make(map[string]json.RawMessage, len(params))
	for k, v := range params {
		raw, err := json.Marshal(v)
		if err != nil {
			return Context{}, fmt.Errorf("domain: encode context parameter %q: %w", k, err)
		}
		encoded[k] = raw
	}
	return Context{
		Name:          ContextName(session, label),
		LifespanCount: ContextLifespan,
		Parameters:    encoded,
	}, nil
}

// FindContext returns the first context satisfying match.
func FindContext(contexts []Context, match func(Context) bool) (Context, error) {
	for _, c := range contexts {
		if match(c) {
			return c, nil
		}
	}
	return Context{}, ErrNoContext
}

// WithParam matches contexts carrying the given parameter key.
func WithParam(key string) func(Context) bool {
	return func(c Context) bool { return c.HasParam(key) }
}

// NameContains matches contexts whose name contains s.
func NameContains(s string) func(Context) bool {
	return func(c Context) bool { return strings.Contains(c.Name, s) }
}

// ListedSneakers reads the product list written by the query turn.
func ListedSneakers(contexts []Context) ([]Product, error) {
	c, err := FindContext(contexts, WithParam(ParamSneakers))
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := c.Decode(ParamSneakers, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SelectedSneaker reads the product written by the selection turn.
func SelectedSneaker(contexts []Context) (Product, error) {
	c, err := FindContext(contexts, NameContains(LabelSelectedSneaker))
	if err != nil {
		return Product{}, err
	}
	var p Product
	if err := c.Decode(ParamSneaker, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// SneakersContext is written after a successful lookup.
func SneakersContext(session string, products []Product, info InfoType) (Context, error) {
	return NewContext(session, LabelSneakers, map[string]any{
		ParamSneakers: products,
		ParamInfoType: info,
	})
}

// SelectedSneakerContext is written after a valid selection. info is the
// type to offer on the next turn.
func SelectedSneakerContext(session string, product Product, info InfoType) (Context, error) {
	return NewContext(session, LabelSelectedSneaker, map[string]any{
		ParamSneaker:  product,
		ParamInfoType: info,
	})
}
