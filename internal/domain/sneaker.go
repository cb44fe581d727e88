package domain

import "strings"

// Sneaker is the product snapshot as the backend returns it. The storefront
// never mutates these fields.
type Sneaker struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Colorway    string  `json:"colorway,omitempty"`
	Tag         string  `json:"tag,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Description string  `json:"description,omitempty"`
}

// GenderLabel normalizes the backend's free-form gender field for display.
func (s Sneaker) GenderLabel() string {
	switch strings.ToLower(s.Gender) {
	case "women":
		return "Women"
	case "men":
		return "Men"
	default:
		return "Unisex"
	}
}

// SizeRange lists the EU sizes offered for a sneaker. Women's models run
// 35-41, everything else 41-46.
func (s Sneaker) SizeRange() []int {
	if strings.EqualFold(s.Gender, "women") {
		return []int{35, 36, 37, 38, 39, 40, 41}
	}
	return []int{41, 42, 43, 44, 45, 46}
}

// ResolveImageURL turns a backend-relative image path into an absolute URL.
// An empty result means the caller should render the placeholder glyph.
func ResolveImageURL(backendBaseURL, raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return strings.TrimRight(backendBaseURL, "/") + raw
}
