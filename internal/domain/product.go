package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Product is a single candidate returned by the matching service.
// Every field is optional; absent values are left nil or empty.
type Product struct {
	Name       string   `json:"name,omitempty"`
	Category   string   `json:"category,omitempty"`
	Color      string   `json:"color,omitempty"`
	Brand      string   `json:"brand,omitempty"`
	Price      Price    `json:"price,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// Price keeps the backend's price as text. The backend sends either a
// JSON number or a string, so both are accepted. A numeric zero counts as
// missing; string prices are kept verbatim, "0" included.
type Price string

// UnmarshalJSON accepts numbers, strings and null.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		*p = ""
		return nil
	}
	*p = Price(n.String())
	return nil
}

// IsZero reports whether the price is missing.
func (p Price) IsZero() bool {
	return p == ""
}

// MatchResponse is the body of a successful POST /match.
type MatchResponse struct {
	Results []Product `json:"results"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// MatchRequest is everything sent to the matching service for one search.
type MatchRequest struct {
	Input   SearchInput
	Filters FilterSet
}
