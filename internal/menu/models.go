package menu

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
)

var (
	ErrNotFound    = errors.New("menu item not found")
	ErrInvalidItem = errors.New("invalid menu item")
)

// "All" cuma filter, bukan kategori
const CategoryAll = "All"

var Categories = []string{"Burgers", "Pizza", "Drinks", "Desserts"}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

func knownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

func (m MenuItem) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case strings.TrimSpace(m.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidItem)
	case math.IsNaN(m.Price) || math.IsInf(m.Price, 0) || m.Price < 0:
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidItem)
	case !knownCategory(m.Category):
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, m.Category)
	}
	u, err := url.Parse(m.Image)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: image must be an http(s) URL", ErrInvalidItem)
	}
	return nil
}

// Filter mirrors the menu page: category (or All) plus case-insensitive name search.
func Filter(items []MenuItem, category, query string) []MenuItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if category != "" && category != CategoryAll && it.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		out = append(out, it)
	}
	return out
}
