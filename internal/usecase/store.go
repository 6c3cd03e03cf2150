package usecase

import (
	"time"

	"github.com/eslsoft/parlato/internal/entity"
)

// defaultStoreItems is the shipped shop catalog. Admin-created entries with
// free-form categories come through as CustomKind items.
var defaultStoreItems = []entity.StoreItem{
	{ID: "theme-trattoria", Name: "Trattoria Theme", Kind: entity.KindTheme, Price: 800},
	{ID: "theme-venezia", Name: "Venezia Theme", Kind: entity.KindTheme, Price: 1200},
	{ID: "theme-notte", Name: "Notte Italiana Theme", Kind: entity.KindTheme, Price: 1500,
		Promotion: &entity.Promotion{DiscountPercent: 20, EndsAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)}},
	{ID: "title-poeta", Name: "Il Poeta", Kind: entity.KindTitle, Price: 500},
	{ID: "title-maestro", Name: "Il Maestro", Kind: entity.KindTitle, Price: 2000},
	{ID: "streak-freeze", Name: "Streak Freeze", Kind: entity.KindStreakFreeze, Price: 300, Consumable: true},
	{ID: "sticker-vespa", Name: "Vespa Sticker Pack", Kind: entity.CustomKind("sticker"), Price: 250},
}

// StoreItems returns the purchasable item list.
func StoreItems() []entity.StoreItem {
	return defaultStoreItems
}

// FindStoreItem looks up one item by ID.
func FindStoreItem(id string) (entity.StoreItem, bool) {
	for _, item := range defaultStoreItems {
		if item.ID == id {
			return item, true
		}
	}
	return entity.StoreItem{}, false
}
