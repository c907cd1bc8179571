package models

import (
	"time"
)

// MenuItem represents a dish on the restaurant menu
type MenuItem struct {
	ID          int     `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// Image is a remote URI; it is never fetched or cached by this service
	Image     string    `json:"image"`
	Category  string    `gorm:"not null;index" json:"category"`
	CreatedAt time.Time `json:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// Category is kept as a table for forward compatibility, but the canonical
// category set is derived from the distinct category values on menu items.
type Category struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	CreatedAt   time.Time `json:"-"`
}

// FallbackCategories is the ordered default shown when the live category
// query fails before any data exists.
var FallbackCategories = []string{"Starters", "Mains", "Desserts", "Drinks"}
