package services

import (
	"strings"

	"github.com/franciscosanchezn/little-lemon-app/internal/models"
)

// FilterMenuItems derives the visible item subset from the full item set,
// the selected category and the free-text search query.
//
// A non-empty (trimmed) search takes precedence: items whose name or
// description contains the search text case-insensitively are returned and
// the category is ignored. Otherwise items are matched by case-insensitive
// category equality. The result preserves the input order.
func FilterMenuItems(items []models.MenuItem, selectedCategory, searchText string) []models.MenuItem {
	filtered := make([]models.MenuItem, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(searchText))
	if search != "" {
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), search) ||
				strings.Contains(strings.ToLower(item.Description), search) {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}

	for _, item := range items {
		if strings.EqualFold(item.Category, selectedCategory) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
