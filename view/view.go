// Package view derives what a card list shows from a collection snapshot.
// Nothing here touches storage.
package view

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/andrewpaige1/wordcards/models"
)

// Query holds the transient list filters.
type Query struct {
	Search   string `json:"search"`
	Category string `json:"category"`
}

// DistinctCategories returns every non-empty category in cards once, sorted
// for stable display.
func DistinctCategories(cards []models.Flashcard) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, c := range cards {
		if c.Category == "" {
			continue
		}
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		categories = append(categories, c.Category)
	}
	slices.Sort(categories)
	return categories
}

// Filter keeps the cards whose word or translation contains search, ignoring
// case, and whose category equals category. Empty arguments match everything.
func Filter(cards []models.Flashcard, search, category string) []models.Flashcard {
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]models.Flashcard, 0, len(cards))
	for _, c := range cards {
		if needle != "" &&
			!strings.Contains(fold.String(c.Word), needle) &&
			!strings.Contains(fold.String(c.Translation), needle) {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort returns a copy of cards ordered newest first. Equal timestamps keep
// their input order.
func Sort(cards []models.Flashcard) []models.Flashcard {
	out := slices.Clone(cards)
	if out == nil {
		out = []models.Flashcard{}
	}
	slices.SortStableFunc(out, func(a, b models.Flashcard) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})
	return out
}

// Render is the list a screen shows for cards under q.
func Render(cards []models.Flashcard, q Query) []models.Flashcard {
	return Sort(Filter(cards, q.Search, q.Category))
}
