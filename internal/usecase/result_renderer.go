package usecase

import (
	"fmt"

	"github.com/lookalike/web/internal/domain"
)

// Fallbacks used when a product field is missing
const (
	PlaceholderImageURL = "https://via.placeholder.com/300x400.png?text=No+Image"
	UnavailableImageURL = "https://via.placeholder.com/300x400.png?text=Image+Unavailable"
	FallbackName        = "Untitled Product"
	FallbackAlt         = "Product"
	FallbackCategory    = "Uncategorized"
	FallbackColor       = "Unknown Color"
	FallbackPrice       = "—"
	CurrencySymbol      = "₹"
	SubtitleSeparator   = " — "
	EmptyPrompt         = "Upload or enter an image to find similar products."
)

// ProductCard is a product with every fallback already applied
type ProductCard struct {
	ImageURL         string `json:"imageUrl"`
	FallbackImageURL string `json:"fallbackImageUrl"`
	Alt              string `json:"alt"`
	Name             string `json:"name"`
	Subtitle         string `json:"subtitle"`
	Price            string `json:"price"`
	Brand            string `json:"brand,omitempty"`
	Similarity       string `json:"similarity,omitempty"`
}

// ShowBrand reports whether the card has a brand line
func (c ProductCard) ShowBrand() bool { return c.Brand != "" }

// ShowSimilarity reports whether the card has a match score line
func (c ProductCard) ShowSimilarity() bool { return c.Similarity != "" }

// ResultsView is what the results area displays
type ResultsView struct {
	Header     string        `json:"header,omitempty"`
	Cards      []ProductCard `json:"cards"`
	ShowPrompt bool          `json:"showPrompt"`
	Prompt     string        `json:"prompt,omitempty"`
	Loading    bool          `json:"loading"`
}

// BuildCard maps a product to its card. This is the only place product
// fallbacks are decided.
func BuildCard(p domain.Product) ProductCard {
	card := ProductCard{
		ImageURL:         p.ImageURL,
		FallbackImageURL: UnavailableImageURL,
		Alt:              p.Name,
		Name:             p.Name,
		Brand:            p.Brand,
	}
	if card.ImageURL == "" {
		card.ImageURL = PlaceholderImageURL
	}
	if card.Name == "" {
		card.Name = FallbackName
		card.Alt = FallbackAlt
	}

	category, color := p.Category, p.Color
	if category == "" {
		category = FallbackCategory
	}
	if color == "" {
		color = FallbackColor
	}
	card.Subtitle = category + SubtitleSeparator + color

	if p.Price.IsZero() {
		card.Price = CurrencySymbol + FallbackPrice
	} else {
		card.Price = CurrencySymbol + string(p.Price)
	}

	if p.Similarity != nil {
		card.Similarity = fmt.Sprintf("%.1f%%", *p.Similarity*100)
	}

	return card
}

// RenderResults builds the results area. Order is the backend's order.
// While loading neither stale cards nor the prompt are shown.
func RenderResults(results []domain.Product, loading bool) ResultsView {
	view := ResultsView{Cards: []ProductCard{}, Loading: loading}
	if loading {
		return view
	}

	if len(results) == 0 {
		view.ShowPrompt = true
		view.Prompt = EmptyPrompt
		return view
	}

	view.Header = fmt.Sprintf("%d similar products found:", len(results))
	for _, p := range results {
		view.Cards = append(view.Cards, BuildCard(p))
	}
	return view
}
