package domain

import "fmt"

// Facet is a named filter dimension
type Facet string

const (
	FacetCategory Facet = "category"
	FacetBrand    Facet = "brand"
	FacetColor    Facet = "color"
	FacetGender   Facet = "gender"
)

// Facets lists every facet in the order it is sent and displayed.
var Facets = []Facet{FacetCategory, FacetBrand, FacetColor, FacetGender}

// ParseFacet converts a form or wire name into a Facet
func ParseFacet(name string) (Facet, error) {
	for _, f := range Facets {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFacet, name)
}

// Label is the placeholder text of the facet's select box.
func (f Facet) Label() string {
	switch f {
	case FacetCategory:
		return "Category"
	case FacetBrand:
		return "Brand"
	case FacetColor:
		return "Color"
	case FacetGender:
		return "Gender"
	}
	return string(f)
}

// FacetValue is one active facet selection.
type FacetValue struct {
	Facet Facet
	Value string
}

// FilterSet holds the selected value per facet. Unset facets have no entry.
type FilterSet map[Facet]string

// Set merges a selection. An empty value unsets the facet.
func (s FilterSet) Set(facet Facet, value string) {
	if value == "" {
		delete(s, facet)
		return
	}
	s[facet] = value
}

// Get returns the selected value, or "" when unset.
func (s FilterSet) Get(facet Facet) string {
	return s[facet]
}

// Active returns the set facets in canonical order.
func (s FilterSet) Active() []FacetValue {
	active := make([]FacetValue, 0, len(s))
	for _, f := range Facets {
		if v := s[f]; v != "" {
			active = append(active, FacetValue{Facet: f, Value: v})
		}
	}
	return active
}

// Clone returns an independent copy.
func (s FilterSet) Clone() FilterSet {
	c := make(FilterSet, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// FilterOptions are the allowed values per facet, as enumerated by the backend.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Colors     []string `json:"colors"`
	Genders    []string `json:"genders"`
}

// EmptyFilterOptions returns options with four empty lists.
func EmptyFilterOptions() FilterOptions {
	return FilterOptions{
		Categories: []string{},
		Brands:     []string{},
		Colors:     []string{},
		Genders:    []string{},
	}
}

// For returns the option list of a facet.
func (o FilterOptions) For(facet Facet) []string {
	switch facet {
	case FacetCategory:
		return o.Categories
	case FacetBrand:
		return o.Brands
	case FacetColor:
		return o.Colors
	case FacetGender:
		return o.Genders
	}
	return nil
}

// Normalize replaces nil lists with empty ones.
func (o FilterOptions) Normalize() FilterOptions {
	if o.Categories == nil {
		o.Categories = []string{}
	}
	if o.Brands == nil {
		o.Brands = []string{}
	}
	if o.Colors == nil {
		o.Colors = []string{}
	}
	if o.Genders == nil {
		o.Genders = []string{}
	}
	return o
}
